package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"recipehub/internal/domain/recipe"
	"recipehub/internal/http/handlers"

	"github.com/gin-gonic/gin"
)

// bindRouter exposes a probe endpoint that only binds and echoes, so the
// error envelope produced by BindJSON can be inspected directly.
func bindRouter() *gin.Engine {
	r := gin.New()

	r.POST("/probe", func(c *gin.Context) {
		var req recipe.CreateRecipeRequest

		if !handlers.BindJSON(c, &req) {
			return
		}

		c.JSON(http.StatusOK, req)
	})

	return r
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			JSON   string `json:"json"`
			Fields []struct {
				Field string `json:"field"`
				Rule  string `json:"rule"`
			} `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func TestBindJSON_ValidationErrorsUseJSONFieldNames(t *testing.T) {
	r := bindRouter()

	// nome missing, ingredientes empty, categoriaId missing
	w := postJSON(t, r, "/probe", `{"modo_preparo":"asse","ingredientes":[]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
	}

	var env errorEnvelope

	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to unmarshal error envelope: %v body=%s", err, w.Body.String())
	}

	byField := map[string]string{}

	for _, f := range env.Error.Details.Fields {
		byField[f.Field] = f.Rule
	}

	if byField["nome"] != "required" {
		t.Fatalf("expected required violation on nome, got %v", byField)
	}

	if byField["ingredientes"] != "min" {
		t.Fatalf("expected min violation on ingredientes, got %v", byField)
	}

	if byField["categoriaId"] != "required" {
		t.Fatalf("expected required violation on categoriaId, got %v", byField)
	}
}

func TestBindJSON_SyntaxError(t *testing.T) {
	r := bindRouter()

	w := postJSON(t, r, "/probe", `{"nome": "Bolo",`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}

	var env errorEnvelope

	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to unmarshal error envelope: %v", err)
	}

	if env.Error.Details.JSON != "invalid_json_syntax" {
		t.Fatalf("expected invalid_json_syntax marker, body=%s", w.Body.String())
	}
}

func TestBindJSON_TypeMismatchNamesTheField(t *testing.T) {
	r := bindRouter()

	// categoriaId must be a number
	w := postJSON(t, r, "/probe", `{"nome":"Bolo","modo_preparo":"asse","ingredientes":["ovo"],"categoriaId":"um"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
	}

	var env errorEnvelope

	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to unmarshal error envelope: %v", err)
	}

	if env.Error.Details.JSON != "invalid_json_type" {
		t.Fatalf("expected invalid_json_type marker, body=%s", w.Body.String())
	}

	if len(env.Error.Details.Fields) != 1 || env.Error.Details.Fields[0].Field != "categoriaId" {
		t.Fatalf("type error should name categoriaId, body=%s", w.Body.String())
	}
}
