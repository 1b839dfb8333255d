package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_coingecko "github.com/cryptoswap/swap-proxy/coingecko/mocks"
)

func TestHandleRatesWebsocket(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, snapshots := newTestServer(t, ctrl)
	snapshots.Put(warmSnapshot())

	httpServer := httptest.NewServer(http.HandlerFunc(server.handleRatesWebsocket))
	defer httpServer.Close()

	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The current price table is pushed on connect
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first ratesResponse
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, float64(64000), first.Prices["BTC"])

	// A snapshot replacement triggers another push
	snapshot := warmSnapshot()
	snapshot.Prices["bitcoin"] = 65000

	mockClient := server.apiClient.(*mock_coingecko.MockAPIClient)
	mockClient.EXPECT().
		FetchPrices(gomock.Any(), gomock.Any()).
		Return(snapshot, nil).
		Times(1)

	_, err = server.quoterService.Refresh(context.Background())
	require.NoError(t, err)

	var second ratesResponse
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, float64(65000), second.Prices["BTC"])
}
