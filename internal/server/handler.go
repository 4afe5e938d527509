package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/idelchi/foldersize/internal/dirstat"
	"github.com/idelchi/foldersize/internal/fserr"
)

// internalMessage replaces the message of every unclassified failure.
const internalMessage = "Internal server error"

// GetFoldersRequest holds the validated query parameters.
type GetFoldersRequest struct {
	// Path is the folder to be analyzed.
	Path string
	// Count is the number of subfolders to return.
	Count int
	// SuppressAccessErrors ignores access errors on nested files and folders.
	SuppressAccessErrors bool
}

// GetFoldersResponse lists folder paths, largest first.
type GetFoldersResponse struct {
	Paths []string `json:"paths"`
}

// ErrorResponse carries a failure message.
type ErrorResponse struct {
	Message string `json:"message"`
}

// validationError marks a request the caller got wrong.
type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}

func invalid(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// handle adapts an error-returning handler and maps its failures to responses.
func (s *Server) handle(fn func(http.ResponseWriter, *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.logger.Error("request failed",
				"method", r.Method,
				"url", r.URL.String(),
				"kind", fserr.KindOf(err),
				"error", err,
			)

			code, message := statusFor(err)
			writeJSON(w, code, ErrorResponse{Message: message})
		}
	})
}

// statusFor maps an error to its HTTP status and client-facing message.
func statusFor(err error) (int, string) {
	var bad *validationError
	if errors.As(err, &bad) {
		return http.StatusBadRequest, bad.Error()
	}

	switch fserr.KindOf(err) {
	case fserr.KindNotFound:
		return http.StatusBadRequest, err.Error()
	case fserr.KindAccessDenied:
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, internalMessage
	}
}

func (s *Server) getFolders(w http.ResponseWriter, r *http.Request) error {
	req, err := s.parseGetFolders(r)
	if err != nil {
		return err
	}

	result, err := s.finder.Scan(r.Context(), req.Path, dirstat.Options{
		Count:                req.Count,
		SuppressAccessErrors: req.SuppressAccessErrors,
		Concurrency:          s.opts.Concurrency,
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, GetFoldersResponse{Paths: result.Paths()})

	return nil
}

func (s *Server) parseGetFolders(r *http.Request) (GetFoldersRequest, error) {
	query := r.URL.Query()

	req := GetFoldersRequest{
		Path:  query.Get("path"),
		Count: s.opts.DefaultCount,
	}

	if req.Path == "" {
		return req, invalid("the path parameter is required")
	}

	if raw := query.Get("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 1 || count > math.MaxInt32 {
			return req, invalid("count must be an integer between 1 and %d, got %q", math.MaxInt32, raw)
		}

		req.Count = count
	}

	if raw := query.Get("suppressAccessErrors"); raw != "" {
		suppress, err := strconv.ParseBool(raw)
		if err != nil {
			return req, invalid("suppressAccessErrors must be a boolean, got %q", raw)
		}

		req.SuppressAccessErrors = suppress
	}

	return req, nil
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	//nolint:errchkjson // the response is already committed
	_ = json.NewEncoder(w).Encode(body)
}
