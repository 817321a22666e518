// Package room manages live interview rooms: creation, signed invite links
// and a websocket chat hub per room. Audio and video stay peer-to-peer in
// the browser and never pass through here.
package room

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("room not found")
	ErrTitleRequired = errors.New("please enter a meeting title")
	ErrInvalidType   = errors.New("invalid meeting type")
	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidEmail  = errors.New("invalid email address")
)

// Type is the kind of interview held in a room.
type Type string

const (
	TypeTechnical  Type = "technical"
	TypeBehavioral Type = "behavioral"
	TypeGeneral    Type = "general"
)

// Role is a participant's role in a room.
type Role string

const (
	RoleHost        Role = "host"
	RoleParticipant Role = "participant"
	RoleObserver    Role = "observer"
)

// Participant is someone currently connected to a room.
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	IsHost bool   `json:"isHost"`
}

// Room is a live interview room.
type Room struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Type         Type          `json:"type"`
	HostName     string        `json:"hostName"`
	CreatedAt    time.Time     `json:"createdAt"`
	Link         string        `json:"link"`
	Participants []Participant `json:"participants"`
}

// Invite is a signed join link for one invitee.
type Invite struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Link  string `json:"link"`
	Token string `json:"token"`
}

type entry struct {
	room Room
	hub  *Hub
}

// Manager holds live rooms in memory until they expire.
type Manager struct {
	rooms     *cache.Cache
	signer    *Signer
	publicURL string
	validate  *validator.Validate
	log       *zap.Logger
}

// NewManager creates a Manager. Rooms expire ttl after creation and their
// hubs are closed when the expired entry is swept.
func NewManager(signer *Signer, publicURL string, ttl time.Duration, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	c := cache.New(ttl, time.Minute)
	c.OnEvicted(func(id string, v interface{}) {
		if e, ok := v.(*entry); ok {
			e.hub.Close()
			log.Debug("room expired", zap.String("room_id", id))
		}
	})
	return &Manager{
		rooms:     c,
		signer:    signer,
		publicURL: strings.TrimRight(publicURL, "/"),
		validate:  validator.New(),
		log:       log,
	}
}

// Create opens a room and returns it with a host token for hostName.
func (m *Manager) Create(title string, typ Type, hostName string) (*Room, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, "", ErrTitleRequired
	}
	if typ == "" {
		typ = TypeTechnical
	}
	switch typ {
	case TypeTechnical, TypeBehavioral, TypeGeneral:
	default:
		return nil, "", ErrInvalidType
	}
	if strings.TrimSpace(hostName) == "" {
		hostName = "Host"
	}

	id, err := newRoomID()
	if err != nil {
		return nil, "", err
	}
	token, err := m.signer.Sign(id, hostName, RoleHost)
	if err != nil {
		return nil, "", err
	}

	e := &entry{
		room: Room{
			ID:        id,
			Title:     title,
			Type:      typ,
			HostName:  hostName,
			CreatedAt: time.Now(),
			Link:      m.link(id, ""),
		},
		hub: NewHub(id, m.log),
	}
	m.rooms.SetDefault(id, e)
	m.log.Info("room created", zap.String("room_id", id), zap.String("type", string(typ)))

	r := e.snapshot()
	return &r, token, nil
}

// Get returns the room with its connected participants.
func (m *Manager) Get(id string) (*Room, error) {
	e, err := m.entry(id)
	if err != nil {
		return nil, err
	}
	r := e.snapshot()
	return &r, nil
}

// Invite issues a signed join link for email.
func (m *Manager) Invite(roomID, email string, role Role) (*Invite, error) {
	if _, err := m.entry(roomID); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if err := m.validate.Var(email, "required,email"); err != nil {
		return nil, ErrInvalidEmail
	}
	if role == "" {
		role = RoleParticipant
	}
	if role != RoleParticipant && role != RoleObserver {
		return nil, ErrInvalidRole
	}

	token, err := m.signer.Sign(roomID, email, role)
	if err != nil {
		return nil, err
	}
	return &Invite{Email: email, Role: role, Link: m.link(roomID, token), Token: token}, nil
}

// Authorize checks that token grants access to roomID and returns the
// room's hub with the caller's claims.
func (m *Manager) Authorize(roomID, token string) (*Hub, *Claims, error) {
	e, err := m.entry(roomID)
	if err != nil {
		return nil, nil, err
	}
	claims, err := m.signer.Parse(token)
	if err != nil {
		return nil, nil, err
	}
	if claims.RoomID != roomID {
		return nil, nil, ErrInvalidToken
	}
	return e.hub, claims, nil
}

// Close shuts every room hub down.
func (m *Manager) Close() {
	for id, item := range m.rooms.Items() {
		if e, ok := item.Object.(*entry); ok {
			e.hub.Close()
		}
		m.rooms.Delete(id)
	}
}

func (m *Manager) entry(id string) (*entry, error) {
	v, ok := m.rooms.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*entry), nil
}

func (m *Manager) link(id, token string) string {
	link := fmt.Sprintf("%s/live-interview/%s", m.publicURL, url.PathEscape(id))
	if token != "" {
		link += "?token=" + url.QueryEscape(token)
	}
	return link
}

func (e *entry) snapshot() Room {
	r := e.room
	r.Participants = e.hub.Participants()
	return r
}

const roomIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newRoomID returns ids of the form meet-xxxxxxxx.
func newRoomID() (string, error) {
	var b strings.Builder
	b.WriteString("meet-")
	limit := big.NewInt(int64(len(roomIDAlphabet)))
	for i := 0; i < 8; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generating room id: %w", err)
		}
		b.WriteByte(roomIDAlphabet[n.Int64()])
	}
	return b.String(), nil
}
