package api

import (
	"github.com/tcp_snm/problemhub/internal/service/admin_service"
	"github.com/tcp_snm/problemhub/internal/service/auth_service"
	"github.com/tcp_snm/problemhub/internal/service/problem_service"
	"github.com/tcp_snm/problemhub/internal/service/testcase_service"
)

const (
	// upper bound for multipart forms kept in memory, the rest spills to disk
	maxMultipartMemory = 32 << 20
)

type Api struct {
	AuthServiceConfig     *auth_service.AuthService
	AdminServiceConfig    *admin_service.AdminService
	ProblemServiceConfig  *problem_service.ProblemService
	TestcaseServiceConfig *testcase_service.TestcaseService
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type sessionMessageResponse struct {
	Message string `json:"message"`
	auth_service.SessionResponse
}

type adminResponse struct {
	Message string              `json:"message,omitempty"`
	Admin   admin_service.Admin `json:"admin"`
}

type problemResponse struct {
	Message string                  `json:"message,omitempty"`
	Problem problem_service.Problem `json:"problem"`
}

type problemsResponse struct {
	Problems []problem_service.Problem `json:"problems"`
}

type deleteImageRequest struct {
	Image string `json:"image"`
}

type testcaseResponse struct {
	Message  string                    `json:"message,omitempty"`
	Testcase testcase_service.Testcase `json:"testcase"`
}

type testcasesResponse struct {
	Testcases []testcase_service.Testcase `json:"testcases"`
}
