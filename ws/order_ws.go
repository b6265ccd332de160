package ws

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/repository"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/utils"
)

// OrderHub streams status changes of an order to its owner. One room per
// order ID.
type OrderHub struct {
	clients    map[uint]map[*websocket.Conn]bool // orderID -> set of clients
	broadcast  chan StatusUpdate
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
	orders     *repository.OrderRepository
}

type Subscription struct {
	Conn    *websocket.Conn
	OrderID uint
	UserID  uint
}

type StatusUpdate struct {
	OrderID uint      `json:"orderId"`
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
}

func NewOrderHub(orders *repository.OrderRepository) *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan StatusUpdate),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		orders:     orders,
	}
}

func (h *OrderHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.OrderID] == nil {
				h.clients[sub.OrderID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.OrderID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.OrderID][sub.Conn]; ok {
				delete(h.clients[sub.OrderID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case upd := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[upd.OrderID] {
				if err := conn.WriteJSON(upd); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[upd.OrderID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// OrderCreated implements services.OrderEvents; creation precedes any
// subscription, nothing to push yet.
func (h *OrderHub) OrderCreated(_ *entity.Order) {}

// OrderStatusChanged implements services.OrderEvents.
func (h *OrderHub) OrderStatusChanged(orderID, _ uint, status string) {
	h.broadcast <- StatusUpdate{OrderID: orderID, Status: status, At: time.Now()}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders/:id; the caller must own the order.
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid order id", "data": nil, "status": false})
		return
	}
	orderID := uint(id)
	userID := utils.CurrentUserID(c)

	if _, err := h.orders.GetOrderForUser(userID, orderID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "order not found", "data": nil, "status": false})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Subscription{Conn: conn, OrderID: orderID, UserID: userID}
	h.register <- sub

	go h.readLoop(sub)
}

// readLoop drains client frames so pings/close are handled; the stream is
// one-way.
func (h *OrderHub) readLoop(sub Subscription) {
	defer func() { h.unregister <- sub }()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
