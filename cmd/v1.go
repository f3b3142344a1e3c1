package main

import (
	"github.com/go-chi/chi/v5"
)

func NewV1Router() *chi.Mux {
	v1 := chi.NewRouter()

	v1.Get("/healthz", apiConfig.HandlerReadiness)

	// otp layer
	v1.Post("/otp/request", apiConfig.HandlerRequestOTP)
	v1.Post("/otp/verify", apiConfig.HandlerVerifyOTP)

	// admin layer
	v1.Post("/admin/signup", apiConfig.HandlerSignUp)
	v1.Post("/admin/signup/verify", apiConfig.HandlerVerifySignUp)
	v1.Post("/admin/login", apiConfig.HandlerLogin)
	v1.Post("/admin/logout", authConfig.JWTMiddleware(apiConfig.HandlerLogout))
	v1.Post("/admin/reset-password", authConfig.JWTMiddleware(apiConfig.HandlerResetPassword))
	v1.Get("/admin/profile", authConfig.JWTMiddleware(apiConfig.HandlerGetProfile))
	v1.Put("/admin/profile", authConfig.JWTMiddleware(apiConfig.HandlerEditProfile))
	v1.Delete("/admin/profile", authConfig.JWTMiddleware(apiConfig.HandlerDeleteProfile))

	// problems layer
	v1.Get("/problems", apiConfig.HandlerListProblems)
	v1.Get("/problems/{id}", apiConfig.HandlerGetProblem)
	v1.Post("/problems", authConfig.JWTMiddleware(apiConfig.HandlerCreateProblem))
	v1.Put("/problems/{id}", authConfig.JWTMiddleware(apiConfig.HandlerUpdateProblem))
	v1.Delete("/problems/{id}", authConfig.JWTMiddleware(apiConfig.HandlerDeleteProblem))
	v1.Delete("/problems/{id}/images", authConfig.JWTMiddleware(apiConfig.HandlerDeleteProblemImage))

	// testcases layer
	v1.Post("/problems/{id}/testcases", authConfig.JWTMiddleware(apiConfig.HandlerAddTestcases))
	v1.Get("/problems/{id}/testcases", authConfig.JWTMiddleware(apiConfig.HandlerGetTestcases))
	v1.Get("/problems/{id}/testcases/public", apiConfig.HandlerGetPublicTestcases)
	v1.Get("/problems/{id}/testcases/{tcid}", authConfig.JWTMiddleware(apiConfig.HandlerGetTestcase))
	v1.Put("/problems/{id}/testcases/{tcid}", authConfig.JWTMiddleware(apiConfig.HandlerUpdateTestcase))
	v1.Delete("/problems/{id}/testcases/{tcid}", authConfig.JWTMiddleware(apiConfig.HandlerDeleteTestcase))

	return v1
}
