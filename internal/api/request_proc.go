package api

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProcessRequest runs the steps in order and stops at the first failure.
func ProcessRequest[T any](e echo.Context, req *T, steps ...func(echo.Context, *T) error) error {
	for _, step := range steps {
		if err := step(e, req); err != nil {
			return err
		}
	}
	return nil
}

func bindStep[T any](e echo.Context, req *T) error {
	return errors.Wrap(e.Bind(req), "invalid request body")
}

// jsonBodyStep decodes the body as JSON whatever the Content-Type header says.
func jsonBodyStep[T any](e echo.Context, req *T) error {
	return errors.Wrap(e.Echo().JSONSerializer.Deserialize(e, req), "invalid request body")
}

func validateStep[T any](e echo.Context, req *T) error {
	return errors.Wrap(e.Validate(req), "request validation failed")
}
