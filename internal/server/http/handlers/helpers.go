package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/server/http/dto"
	"github.com/thermopolio/thermopolio/internal/server/http/middleware"
)

const (
	msgInternal      = "Errore interno del server"
	msgInvalidInput  = "Dati non validi"
	msgUnauthorized  = "Autenticazione richiesta"
	msgBadCreds      = "Credenziali non valide"
	msgForbidden     = "Operazione non consentita"
	msgNotFound      = "Risorsa non trovata"
	msgAlreadyExists = "Risorsa già esistente"
	msgConflict      = "Operazione in conflitto con lo stato attuale"
	msgTransition    = "Transizione di stato non consentita"
)

var registerTagNames sync.Once

// UseJSONFieldNames makes validator report json tag names instead of Go field names.
func UseJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

// CurrentActor extracts the authenticated actor from context.
func CurrentActor(c *gin.Context) model.Actor {
	val, ok := c.Get(middleware.ActorContextKey)
	if !ok {
		return model.Actor{}
	}
	actor, _ := val.(model.Actor)
	return actor
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.Fail(msgInvalidInput, dto.FieldError{Field: param, Message: "identificativo non valido"}))
		return 0, false
	}
	return id, true
}

func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]dto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, dto.FieldError{Field: fe.Field(), Message: describe(fe)})
		}
		c.JSON(http.StatusBadRequest, dto.Fail(msgInvalidInput, fields...))
		return
	}
	c.JSON(http.StatusBadRequest, dto.Fail("Corpo della richiesta non valido"))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obbligatorio"
	case "email":
		return "indirizzo email non valido"
	case "min", "gte", "gt":
		return fmt.Sprintf("valore troppo basso o troppo corto (minimo %s)", fe.Param())
	case "max", "lte", "lt":
		return fmt.Sprintf("valore troppo alto o troppo lungo (massimo %s)", fe.Param())
	case "oneof":
		return "valore ammesso: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "valore non valido"
}

// writeError maps domain errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	var verr *domainErrors.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]dto.FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, dto.FieldError{Field: f.Field, Message: f.Message})
		}
		c.JSON(http.StatusBadRequest, dto.Fail(msgInvalidInput, fields...))
	case errors.Is(err, domainErrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.Fail(msgInvalidInput))
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.Fail(msgBadCreds))
	case errors.Is(err, domainErrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.Fail(msgUnauthorized))
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.Fail(msgForbidden))
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Fail(msgNotFound))
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.Fail(msgAlreadyExists))
	case errors.Is(err, domainErrors.ErrConflict):
		c.JSON(http.StatusBadRequest, dto.Fail(msgConflict))
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, dto.Fail(msgTransition))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.Fail(msgInternal))
	}
}
