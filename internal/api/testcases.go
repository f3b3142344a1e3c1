package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/tcp_snm/problemhub/internal/service/testcase_service"
)

func testcaseIDs(r *http.Request) (problemID uuid.UUID, testcaseID uuid.UUID, err error) {
	if problemID, err = uuidFromURLParam(r, "id"); err != nil {
		return
	}
	testcaseID, err = uuidFromURLParam(r, "tcid")
	return
}

func (a *Api) HandlerAddTestcases(w http.ResponseWriter, r *http.Request) {
	problemID, err := uuidFromURLParam(r, "id")
	if err != nil {
		handlerError(err, w)
		return
	}

	var request testcase_service.AddTestcasesRequest
	if err = decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	res, err := a.TestcaseServiceConfig.AddTestcases(r.Context(), problemID, request)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusCreated, res)
}

func (a *Api) HandlerGetTestcases(w http.ResponseWriter, r *http.Request) {
	problemID, err := uuidFromURLParam(r, "id")
	if err != nil {
		handlerError(err, w)
		return
	}

	testcases, err := a.TestcaseServiceConfig.GetAll(r.Context(), problemID)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, testcasesResponse{Testcases: testcases})
}

func (a *Api) HandlerGetPublicTestcases(w http.ResponseWriter, r *http.Request) {
	problemID, err := uuidFromURLParam(r, "id")
	if err != nil {
		handlerError(err, w)
		return
	}

	testcases, err := a.TestcaseServiceConfig.GetPublic(r.Context(), problemID)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, testcasesResponse{Testcases: testcases})
}

func (a *Api) HandlerGetTestcase(w http.ResponseWriter, r *http.Request) {
	problemID, testcaseID, err := testcaseIDs(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	testcase, err := a.TestcaseServiceConfig.GetSingle(r.Context(), problemID, testcaseID)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, testcaseResponse{Testcase: testcase})
}

func (a *Api) HandlerUpdateTestcase(w http.ResponseWriter, r *http.Request) {
	problemID, testcaseID, err := testcaseIDs(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	var request testcase_service.UpdateTestcaseRequest
	if err = decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	testcase, err := a.TestcaseServiceConfig.Update(r.Context(), problemID, testcaseID, request)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, testcaseResponse{Message: "testcase updated", Testcase: testcase})
}

func (a *Api) HandlerDeleteTestcase(w http.ResponseWriter, r *http.Request) {
	problemID, testcaseID, err := testcaseIDs(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	if err = a.TestcaseServiceConfig.Delete(r.Context(), problemID, testcaseID); err != nil {
		handlerError(err, w)
		return
	}
	respondWithMessage(w, http.StatusOK, "testcase deleted")
}
