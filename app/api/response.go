package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"SalesDashboard/app/forms"
	"SalesDashboard/app/services"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every API call answers with
type Response struct {
	Type    services.OutcomeType `json:"type,omitempty"`
	Message string               `json:"message,omitempty"`
	Field   string               `json:"field,omitempty"`
	Data    interface{}          `json:"data,omitempty"`
}

var errServiceUnavailable = errors.New("service unavailable")

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Data: data})
}

// done answers a state change with its outcome
func done(c *gin.Context, status int, data interface{}, o services.Outcome) {
	c.JSON(status, Response{Type: o.Type, Message: o.Message, Data: data})
}

func fail(c *gin.Context, err error) {
	failWith(c, err, nil)
}

// failWith answers an error and still returns data, such as a builder draft
// that was left unchanged
func failWith(c *gin.Context, err error, data interface{}) {
	resp := Response{Type: services.OutcomeError, Message: err.Error(), Data: data}
	status := http.StatusInternalServerError

	if v, isValidation := forms.AsValidation(err); isValidation {
		status = http.StatusUnprocessableEntity
		resp.Message = v.Message
		resp.Field = v.Field
	} else if services.IsNotFound(err) {
		status = http.StatusNotFound
	} else if errors.Is(err, errServiceUnavailable) {
		status = http.StatusServiceUnavailable
	}

	c.AbortWithStatusJSON(status, resp)
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{Type: services.OutcomeError, Message: message})
}

// intParam reads a non-negative path parameter
func intParam(c *gin.Context, name string) (int, bool) {
	return parseID(c, name, c.Param(name))
}

func parseID(c *gin.Context, name, raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return n, true
}

// bindValues reads a flat JSON object into form values. Numbers and
// booleans are accepted and rendered the way a form input would hold them.
func bindValues(c *gin.Context) (forms.Values, bool) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return nil, false
	}

	values := make(forms.Values, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			values[k] = ""
		case string:
			values[k] = t
		case float64:
			values[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			values[k] = strconv.FormatBool(t)
		default:
			badRequest(c, "Field "+k+" must be a string or number")
			return nil, false
		}
	}
	return values, true
}

// bindJSON decodes a typed request body
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return false
	}
	return true
}

func query(c *gin.Context) string {
	return strings.TrimSpace(c.Query("q"))
}
