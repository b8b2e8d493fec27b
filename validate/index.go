package validate

import (
	"errors"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so field errors match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	mustRegister(v, "slot", func(fl validator.FieldLevel) bool {
		return slices.Contains(constants.Slots, fl.Field().String())
	})
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return slices.Contains(constants.MenuCategories, fl.Field().String())
	})
	mustRegister(v, "bucket", func(fl validator.FieldLevel) bool {
		return slices.Contains(constants.Buckets, fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Fields validates v and returns the failing json fields mapped to their
// failed rule. The map is empty when v is valid.
func Fields(v any) map[string]string {
	if err := validate.Struct(v); err != nil {
		return utils.FieldErrors(err)
	}
	return map[string]string{}
}

// body parses the request into T and validates it, answering 400 itself on
// failure. ok is false when a response has already been written.
func body[T any](c *fiber.Ctx) (T, bool, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return input, false, utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if fields := Fields(input); len(fields) > 0 {
		return input, false, utils.ValidationErrorResponse(c, constants.VALIDATION_FAILED, fields)
	}
	return input, true, nil
}

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil || valueKey <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", uint(valueKey))
		return c.Next()
	}
}

func Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.ArrayId](c)
		if !ok {
			return err
		}
		c.Locals("deleteIds", input)
		return c.Next()
	}
}
