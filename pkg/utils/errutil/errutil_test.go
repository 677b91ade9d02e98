package errutil_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/utils/errutil"
)

func TestHandle(t *testing.T) {
	ctx := context.Background()
	gt.NoError(t, errutil.Handle(ctx, nil, "nothing"))

	base := goerr.New("failed", goerr.V("key", "value"))
	gt.Error(t, errutil.Handle(ctx, base, "something failed")).Is(base)
}

func TestHandleHTTP(t *testing.T) {
	ctx := context.Background()

	t.Run("client error exposes message", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, w, errors.New("invalid start date"), http.StatusBadRequest)

		gt.V(t, w.Code).Equal(http.StatusBadRequest)
		var body map[string]string
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.V(t, body["error"]).Equal("invalid start date")
	})

	t.Run("server error hides details", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, w, goerr.New("db password leaked"), http.StatusInternalServerError)

		gt.V(t, w.Code).Equal(http.StatusInternalServerError)
		var body map[string]string
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.V(t, body["error"]).Equal("Internal Server Error")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, w, nil, http.StatusInternalServerError)
		gt.V(t, w.Body.Len()).Equal(0)
	})
}
