package store

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/maelcorre/bistrot-app/models"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrChannelNotChosen = errors.New("no fulfillment channel chosen")
)

// Session owns the cart and draft order of one browser session. All
// mutations go through the session so the cross-store rule holds: whenever a
// cart mutation leaves the cart empty while a channel is chosen, the draft
// is reset to its unset state.
type Session struct {
	Token string

	mu       sync.Mutex
	cart     *Cart
	draft    *Draft
	lastSeen time.Time
}

func newSession(token string) *Session {
	return &Session{
		Token:    token,
		cart:     NewCart(),
		draft:    NewDraft(),
		lastSeen: time.Now(),
	}
}

func (s *Session) AddItem(menu models.Menu) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddItem(menu)
	s.syncDraft()
}

func (s *Session) RemoveItem(menuID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(menuID)
	s.syncDraft()
}

func (s *Session) UpdateQuantity(menuID uint, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(menuID, quantity)
	s.syncDraft()
}

func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.syncDraft()
}

// syncDraft enforces the forced-reset rule. Caller holds the lock.
func (s *Session) syncDraft() {
	if s.cart.IsEmpty() && s.draft.Channel() != ChannelNone {
		s.draft.Reset()
	}
}

func (s *Session) SetDelivery(info models.DeliveryDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetDelivery(info)
}

func (s *Session) SetReservation(info models.ReservationDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetReservation(info)
}

func (s *Session) SetTakeaway(info models.TakeawayDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetTakeaway(info)
}

func (s *Session) SetOnSite(info models.TableDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetOnSite(info)
}

func (s *Session) ResetDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Reset()
}

// CartView is a read snapshot for handlers and the checkout summary.
type CartView struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  float64    `json:"subtotal"`
}

func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartView{
		Items:     s.cart.Items(),
		ItemCount: s.cart.ItemCount(),
		Subtotal:  s.cart.Subtotal(),
	}
}

// DraftView mirrors the draft order for handlers. Only the payload matching
// Type is non-nil.
type DraftView struct {
	Type        string                     `json:"type,omitempty"`
	Status      string                     `json:"status"`
	Delivery    *models.DeliveryDetails    `json:"delivery_info,omitempty"`
	Reservation *models.ReservationDetails `json:"reservation_info,omitempty"`
	Takeaway    *models.TakeawayDetails    `json:"takeaway_info,omitempty"`
	Table       *models.TableDetails       `json:"table_info,omitempty"`
}

func (s *Session) Draft() DraftView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftViewLocked()
}

func (s *Session) draftViewLocked() DraftView {
	return DraftView{
		Type:        string(s.draft.Channel()),
		Status:      s.draft.Status(),
		Delivery:    s.draft.Delivery(),
		Reservation: s.draft.Reservation(),
		Takeaway:    s.draft.Takeaway(),
		Table:       s.draft.Table(),
	}
}

// Checkout hands a snapshot of the cart and draft to submit while holding
// the session lock. If submit succeeds the cart is cleared and the draft
// reset; if it fails both stores are left exactly as they were so the
// customer can retry.
func (s *Session) Checkout(submit func(items []CartItem, subtotal float64, draft DraftView) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return ErrEmptyCart
	}
	if s.draft.Channel() == ChannelNone {
		return ErrChannelNotChosen
	}

	if err := submit(s.cart.Items(), s.cart.Subtotal(), s.draftViewLocked()); err != nil {
		return err
	}

	s.cart.Clear()
	s.draft.Reset()
	return nil
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// SessionManager hands out sessions keyed by an opaque token. Sessions are
// in-memory only; they live as long as the process, minus idle pruning.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	maxIdle  time.Duration
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		maxIdle:  24 * time.Hour,
	}
}

// Get returns the session for the token, if any.
func (sm *SessionManager) Get(token string) (*Session, bool) {
	sm.mu.RLock()
	s, ok := sm.sessions[token]
	sm.mu.RUnlock()
	if ok {
		s.touch()
	}
	return s, ok
}

// Create makes a fresh session with a random token.
func (sm *SessionManager) Create() *Session {
	token := newToken()
	s := newSession(token)
	sm.mu.Lock()
	sm.sessions[token] = s
	sm.mu.Unlock()
	return s
}

// GetOrCreate resolves the token to an existing session or starts a new one
// (also when the token is unknown, e.g. after a server restart).
func (sm *SessionManager) GetOrCreate(token string) *Session {
	if token != "" {
		if s, ok := sm.Get(token); ok {
			return s
		}
	}
	return sm.Create()
}

// PruneIdle drops sessions not touched within the idle window.
func (sm *SessionManager) PruneIdle() {
	cutoff := time.Now().Add(-sm.maxIdle)
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for token, s := range sm.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(sm.sessions, token)
		}
	}
}

func newToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}
