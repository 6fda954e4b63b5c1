package rest

import (
	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	apperrors "github.com/example/kanban/internal/errors"
)

// sonicSerializer implements echo.JSONSerializer with sonic. Decoding rejects
// unknown fields.
type sonicSerializer struct{}

func (sonicSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (sonicSerializer) Deserialize(c echo.Context, i any) error {
	dec := sonic.ConfigStd.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, "invalid request body", err)
	}
	return nil
}

func decodeBody(c echo.Context, dst any) error {
	return c.Echo().JSONSerializer.Deserialize(c, dst)
}
