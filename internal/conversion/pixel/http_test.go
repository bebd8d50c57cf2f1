package pixel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPDispatcher_FiresGET(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.String())
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(srv.Client(), zap.NewNop())

	require.NoError(t, d.Ensure(context.Background()))
	require.NoError(t, d.Primary(context.Background(), srv.URL+"/track?pid=p"))
	require.NoError(t, d.Postback(context.Background(), srv.URL+"/postback?xid=x"))

	require.Len(t, got, 2)
	assert.Equal(t, "/track?pid=p", got[0])
	assert.Equal(t, "/postback?xid=x", got[1])
}

func TestHTTPDispatcher_SendFailureIsSilent(t *testing.T) {
	d := NewHTTPDispatcher(nil, zap.NewNop())

	// Nothing listens here; the beacon convention swallows the error.
	assert.NoError(t, d.Primary(context.Background(), "http://127.0.0.1:1/track"))
}
