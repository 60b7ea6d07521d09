package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"shutterdesk-be/internal/expense"
	"shutterdesk-be/internal/logger"
	"shutterdesk-be/internal/order"
)

// WSHandler pushes full collection snapshots over websockets, the way the
// screens used to consume live queries: initial snapshot on connect, a
// fresh one after every change, teardown with the connection.
type WSHandler struct {
	orders   order.Service
	expenses expense.Service
	upgrader websocket.Upgrader
}

func NewWSHandler(orders order.Service, expenses expense.Service) *WSHandler {
	return &WSHandler{
		orders:   orders,
		expenses: expenses,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser app is served from elsewhere; the cookie gate in
			// front of this route is the access control.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type snapshotMessage struct {
	Collection string `json:"collection"`
	Data       any    `json:"data"`
}

func (h *WSHandler) Orders(c *gin.Context) {
	initial, err := h.orders.List(c.Request.Context(), order.ListFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
		return
	}

	h.serve(c, "orders", initial.Orders, func(send func(any)) func() {
		return h.orders.Subscribe(func(snapshot []order.Order) {
			send(snapshot)
		})
	})
}

func (h *WSHandler) Expenses(c *gin.Context) {
	initial, err := h.expenses.List(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
		return
	}

	h.serve(c, "expenses", initial, func(send func(any)) func() {
		return h.expenses.Subscribe(func(snapshot []expense.Expense) {
			send(snapshot)
		})
	})
}

// serve upgrades the connection, replays the initial snapshot, then relays
// published ones until the client goes away. The unsubscribe is deferred so
// the listener cannot outlive the connection.
func (h *WSHandler) serve(c *gin.Context, collection string, initial any, subscribe func(send func(any)) func()) {
	log := logger.FromCtx(c.Request.Context()).With(zap.String("collection", collection))

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Snapshots funnel through a buffered channel of one; a slow client
	// skips intermediate snapshots instead of queuing them, since only the
	// latest matters.
	snapshots := make(chan any, 1)
	send := func(v any) {
		select {
		case snapshots <- v:
		default:
			select {
			case <-snapshots:
			default:
			}
			snapshots <- v
		}
	}

	unsubscribe := subscribe(send)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(snapshotMessage{Collection: collection, Data: initial}); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case snapshot := <-snapshots:
			if err := conn.WriteJSON(snapshotMessage{Collection: collection, Data: snapshot}); err != nil {
				return
			}
		}
	}
}
