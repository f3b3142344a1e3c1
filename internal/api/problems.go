package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service/problem_service"
)

// decodeProblemRequest reads a problem from a json body or a multipart form.
// Multipart files are returned open; the caller closes them with closeFiles.
func decodeProblemRequest(r *http.Request) (problem_service.ProblemRequest, []multipart.File, error) {
	var request problem_service.ProblemRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		err := decodeJsonBody(r.Body, &request)
		return request, nil, err
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return request, nil, fmt.Errorf("%w, invalid multipart form, %s", hub_errors.ErrInvalidRequest, err.Error())
	}
	form := r.MultipartForm

	formValue := func(key string) *string {
		values, ok := form.Value[key]
		if !ok || len(values) == 0 {
			return nil
		}
		return &values[0]
	}
	request.Title = formValue("title")
	request.Difficulty = formValue("difficulty")
	request.Description = formValue("description")
	request.Constraints = formValue("constraints")

	if raw := formValue("tags"); raw != nil {
		tags, err := problem_service.ParseTags(*raw)
		if err != nil {
			return request, nil, err
		}
		request.Tags = tags
	}
	if raw := formValue("hints"); raw != nil {
		if err := json.Unmarshal([]byte(*raw), &request.Hints); err != nil {
			return request, nil, fmt.Errorf("%w, hints must be a json array", hub_errors.ErrInvalidInput)
		}
	}

	// files may come under any field name
	var files []multipart.File
	for _, headers := range form.File {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				closeFiles(files)
				return request, nil, fmt.Errorf("%w, cannot open %s, %s", hub_errors.ErrInvalidRequest, header.Filename, err.Error())
			}
			files = append(files, file)
		}
	}
	return request, files, nil
}

func closeFiles(files []multipart.File) {
	for _, file := range files {
		if err := file.Close(); err != nil {
			log.Warnf("cannot close uploaded file, %v", err)
		}
	}
}

func asReaders(files []multipart.File) []io.Reader {
	readers := make([]io.Reader, 0, len(files))
	for _, file := range files {
		readers = append(readers, file)
	}
	return readers
}

func (a *Api) HandlerCreateProblem(w http.ResponseWriter, r *http.Request) {
	request, files, err := decodeProblemRequest(r)
	if err != nil {
		handlerError(err, w)
		return
	}
	defer closeFiles(files)

	problem, err := a.ProblemServiceConfig.CreateProblem(r.Context(), request, asReaders(files))
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusCreated, problemResponse{Problem: problem})
}

func (a *Api) HandlerUpdateProblem(w http.ResponseWriter, r *http.Request) {
	problemID, err := uuidFromURLParam(r, "id")
	if err != nil {
		handlerError(err, w)
		return
	}

	request, files, err := decodeProblemRequest(r)
	if err != nil {
		handlerError(err, w)
		return
	}
	defer closeFiles(files)

	problem, err := a.ProblemServiceConfig.UpdateProblem(r.Context(), problemID, request, asReaders(files))
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, problemResponse{Message: "problem updated", Problem: problem})
}

func (a *Api) HandlerDeleteProblem(w http.ResponseWriter, r *http.Request) {
	problemID, err := uuidFromURLParam(r, "id")
	if err != nil {
		handlerError(err, w)
		return
	}

	if err = a.ProblemServiceConfig.DeleteProblem(r.Context(), problemID); err != nil {
		handlerError(err, w)
		return
	}
	respondWithMessage(w, http.StatusOK, "problem deleted")
}

func (a *Api) HandlerDeleteProblemImage(w http.ResponseWriter, r *http.Request) {
	problemID, err := uuidFromURLParam(r, "id")
	if err != nil {
		handlerError(err, w)
		return
	}

	var request deleteImageRequest
	if err = decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	problem, err := a.ProblemServiceConfig.DeleteProblemImage(r.Context(), problemID, request.Image)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, problemResponse{Message: "image deleted", Problem: problem})
}

func (a *Api) HandlerGetProblem(w http.ResponseWriter, r *http.Request) {
	problemID, err := uuidFromURLParam(r, "id")
	if err != nil {
		handlerError(err, w)
		return
	}

	problem, err := a.ProblemServiceConfig.GetProblem(r.Context(), problemID)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, problemResponse{Problem: problem})
}

func (a *Api) HandlerListProblems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	request := problem_service.ListProblemsRequest{
		Title:      query.Get("title"),
		Difficulty: query.Get("difficulty"),
		Tag:        query.Get("tag"),
	}

	parseInt := func(key string) (int32, error) {
		raw := query.Get(key)
		if raw == "" {
			return 0, nil
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w, %s must be an integer", hub_errors.ErrInvalidRequest, key)
		}
		return int32(v), nil
	}

	var err error
	if request.PageNumber, err = parseInt("page"); err != nil {
		handlerError(err, w)
		return
	}
	if request.PageSize, err = parseInt("page_size"); err != nil {
		handlerError(err, w)
		return
	}

	problems, err := a.ProblemServiceConfig.ListProblems(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, problemsResponse{Problems: problems})
}
