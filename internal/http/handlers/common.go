package handlers

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"toursbackend/internal/domain"
	"toursbackend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RespondSuccess sends the standard success envelope.
func RespondSuccess(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// RespondList is RespondSuccess with paging info next to the data.
func RespondList(c *gin.Context, data any, page domain.Pagination, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       data,
		"pagination": page,
		"message":    message,
	})
}

// RespondError sends the standard error envelope. fields may be nil.
func RespondError(c *gin.Context, status int, message string, fields map[string][]string) {
	if fields == nil {
		fields = map[string][]string{}
	}
	c.JSON(status, gin.H{
		"success":    false,
		"message":    message,
		"errors":     fields,
		"request_id": middleware.GetRequestID(c),
	})
}

var registerTagNames sync.Once

// UseJSONFieldNames makes binding errors report json names instead of Go
// field names.
func UseJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			RespondError(c, http.StatusBadRequest, "request body is empty", nil)
			return false
		}
		RespondError(c, http.StatusBadRequest, "invalid payload", bindingFields(err))
		return false
	}
	return true
}

func bindingFields(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"non_field_errors": {"malformed JSON or wrong field type"}}
	}
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "max":
		return "ensure this field has no more than " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}

// pageFromQuery reads ?page=&page_size=; bad values fall back to defaults.
func pageFromQuery(c *gin.Context) domain.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return domain.Pagination{Page: page, PageSize: size}.Normalize()
}

// callerOrAbort returns the authenticated caller or writes a 401.
func callerOrAbort(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "authentication credentials were not provided", nil)
		return domain.Caller{}, false
	}
	return caller, true
}
