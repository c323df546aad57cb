package handlers

import (
	"errors"
	"net/http"
	"rugbyrank/api/filters"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/rankings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// httpStatus maps a service error to the response status.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, gender.ErrInvalidGender),
		errors.Is(err, filters.ErrMissingParam),
		errors.Is(err, filters.ErrInvalidParam),
		rankings.IsValidationError(err):
		return http.StatusBadRequest
	}

	// Errors coming from the fetcher.
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.InvalidArgument:
			return http.StatusBadRequest
		case codes.NotFound:
			return http.StatusNotFound
		case codes.Unavailable, codes.DataLoss:
			return http.StatusBadGateway
		case codes.DeadlineExceeded:
			return http.StatusGatewayTimeout
		}
	}

	return http.StatusInternalServerError
}
