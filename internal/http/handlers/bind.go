package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	msgInvalidJSON    = "Invalid JSON"
	msgMissingFields  = "Missing required fields"
	msgInvalidRequest = "Invalid request body"
)

// BindJSON decodes the body as JSON whatever the Content-Type, then validates.
// On failure it writes a 400 envelope and returns false.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	return bindWith(ctx, out, binding.JSON)
}

// BindForm binds multipart/urlencoded form fields (file parts are read separately).
func BindForm(ctx *gin.Context, out interface{}) bool {
	return bindWith(ctx, out, binding.FormMultipart)
}

func bindWith(ctx *gin.Context, out interface{}, b binding.Binding) bool {
	err := ctx.ShouldBindWith(out, b)

	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondTooLarge(ctx, tooLarge.Limit)
			return false
		}

		message, details := parseBindError(err, out)
		RespondBadRequest(ctx, message, details)

		return false
	}

	return true
}

func parseBindError(err error, out interface{}) (string, interface{}) {
	rootType := baseStructType(out)

	var validatorError validator.ValidationErrors

	if errors.As(err, &validatorError) {
		fields := make([]FieldError, 0, len(validatorError))

		for _, fieldError := range validatorError {
			fields = append(fields, FieldError{
				Field:   jsonFieldName(rootType, fieldError.StructField()),
				Rule:    fieldError.Tag(),
				Param:   fieldError.Param(),
				Message: validationMessage(fieldError.Tag(), fieldError.Param()),
			})
		}
		return msgMissingFields, gin.H{"fields": fields}
	}

	if errors.Is(err, io.EOF) {
		return msgInvalidJSON, gin.H{"json": "empty_body"}
	}

	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) || errors.Is(err, io.ErrUnexpectedEOF) {
		return msgInvalidJSON, gin.H{"json": "invalid_json_syntax"}
	}

	// encoding/json already reports the path with JSON key names
	var typeError *json.UnmarshalTypeError

	if errors.As(err, &typeError) {
		field := strings.TrimSpace(typeError.Field)

		return msgInvalidJSON, gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []FieldError{{
				Field:   field,
				Rule:    "type",
				Message: fmt.Sprintf("must be of type %s", typeError.Type.String()),
			}},
		}
	}

	return msgInvalidRequest, gin.H{"reason": err.Error()}
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

// jsonFieldName maps a Go field of the (flat) request struct to its json key.
func jsonFieldName(root reflect.Type, goName string) string {
	if root == nil {
		return goName
	}

	sf, ok := root.FieldByName(goName)
	if !ok {
		return goName
	}

	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return goName
	}

	return name
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + param + " characters"
	}

	if param != "" {
		return fmt.Sprintf("failed %s validation (%s)", rule, param)
	}
	return "failed " + rule + " validation"
}
