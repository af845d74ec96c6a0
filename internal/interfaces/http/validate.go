package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
)

var validate = newValidator()

// newValidator usa el nombre json del campo en los mensajes de error.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON del body y ejecuta las reglas `validate`.
// Si falla ya escribió la respuesta de error y devuelve false.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(out); err != nil {
			return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(validationResponse(err))
	}
	return true, nil
}

func validationResponse(err error) dto.ErrorResponse {
	resp := dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return resp
	}
	resp.Details = make(map[string]string, len(verrs))
	for _, fe := range verrs {
		resp.Details[fieldPath(fe.Namespace())] = ruleMessage(fe)
	}
	return resp
}

// fieldPath quita el nombre del struct raíz: "CreateInvoiceRequest.items[0].quantity" -> "items[0].quantity".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "requerido"
	case "email":
		return "email inválido"
	case "uuid":
		return "uuid inválido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "min", "gte":
		return "mínimo " + fe.Param()
	case "max", "lte":
		return "máximo " + fe.Param()
	case "len":
		return "longitud debe ser " + fe.Param()
	default:
		return "no cumple la regla " + fe.Tag()
	}
}
