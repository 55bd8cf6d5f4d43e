package mockserver

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound      = errors.New(common.MsgUserNotFound)
	ErrInvalidPassword   = errors.New(common.MsgInvalidPassword)
	ErrEmailTaken        = errors.New(common.MsgEmailTaken)
	ErrUsernameTaken     = errors.New(common.MsgUsernameTaken)
	ErrCreatureNotFound  = errors.New("creature not found")
	ErrAlreadyFavorite   = errors.New("creature is already a favourite")
	ErrNotFavorite       = errors.New("creature is not a favourite")
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidPagination = errors.New("invalid pagination")
)

type user struct {
	ID           int64
	Username     string
	PasswordHash []byte
	Role         string
	Profile      models.Profile
}

type creature struct {
	ID   int64
	Name string
	Img  *string
	Lore string
}

// favourite holds the per-user background override of a favourite creature.
type favourite struct {
	Background *string
}

// Store is the in-memory state of the mock server.
type Store struct {
	mu         sync.RWMutex
	bcryptCost int
	users      map[int64]*user
	byName     map[string]int64
	creatures  map[int64]*creature
	favourites map[int64]map[int64]*favourite
	nextUser   int64
	nextArcane int64
}

func NewStore(bcryptCost int) *Store {
	return &Store{
		bcryptCost: bcryptCost,
		users:      make(map[int64]*user),
		byName:     make(map[string]int64),
		creatures:  make(map[int64]*creature),
		favourites: make(map[int64]map[int64]*favourite),
		nextUser:   1,
		nextArcane: 1,
	}
}

func (s *Store) hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
}

func (s *Store) emailInUse(email string, except int64) bool {
	for id, u := range s.users {
		if id != except && strings.EqualFold(u.Profile.Email, email) {
			return true
		}
	}
	return false
}

// CreateUser registers a user. Username and email are unique, case-insensitive.
func (s *Store) CreateUser(reg models.Registration) (int64, error) {
	if reg.Username == "" || reg.Password == "" || reg.Email == "" {
		return 0, ErrMissingField
	}
	hash, err := s.hash(reg.Password)
	if err != nil {
		return 0, err
	}
	role := reg.Role
	if role == "" {
		role = common.RoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[strings.ToLower(reg.Username)]; ok {
		return 0, ErrUsernameTaken
	}
	if s.emailInUse(reg.Email, 0) {
		return 0, ErrEmailTaken
	}

	id := s.nextUser
	s.nextUser++
	s.users[id] = &user{
		ID:           id,
		Username:     reg.Username,
		PasswordHash: hash,
		Role:         role,
		Profile: models.Profile{
			FirstName: reg.FirstName,
			LastName:  reg.LastName,
			Email:     reg.Email,
			Genero:    reg.Genero,
			Username:  reg.Username,
		},
	}
	s.byName[strings.ToLower(reg.Username)] = id
	return id, nil
}

// Authenticate returns the user id and role for valid credentials.
func (s *Store) Authenticate(username, password string) (int64, string, error) {
	s.mu.RLock()
	id, ok := s.byName[strings.ToLower(username)]
	var u user
	if ok {
		u = *s.users[id]
	}
	s.mu.RUnlock()

	if !ok {
		return 0, "", ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return 0, "", ErrInvalidPassword
	}
	return u.ID, u.Role, nil
}

func (s *Store) UserExists(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok
}

func (s *Store) Profile(id int64) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.Profile{}, ErrUserNotFound
	}
	return u.Profile, nil
}

func (s *Store) UpdateProfile(id int64, upd models.ProfileUpdate) error {
	var hash []byte
	if upd.Password != nil && *upd.Password != "" {
		h, err := s.hash(*upd.Password)
		if err != nil {
			return err
		}
		hash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if upd.Email != "" && s.emailInUse(upd.Email, id) {
		return ErrEmailTaken
	}

	u.Profile.FirstName = upd.FirstName
	u.Profile.LastName = upd.LastName
	if upd.Email != "" {
		u.Profile.Email = upd.Email
	}
	u.Profile.Genero = upd.Genero
	if hash != nil {
		u.PasswordHash = hash
	}
	return nil
}

func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	delete(s.byName, strings.ToLower(u.Username))
	delete(s.users, id)
	delete(s.favourites, id)
	return nil
}

// ListQuery filters a creature listing. UserID decides the favourite flag.
type ListQuery struct {
	UserID        int64
	Page          int
	Limit         int
	Name          string
	FavoritesOnly bool
}

// ListCreatures returns one page ordered by id plus the total match count.
func (s *Store) ListCreatures(q ListQuery) (models.CreaturePage, error) {
	if q.Page < 1 || q.Limit < 1 {
		return models.CreaturePage{}, ErrInvalidPagination
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	favs := s.favourites[q.UserID]
	name := strings.ToLower(q.Name)

	matched := make([]*creature, 0, len(s.creatures))
	for _, c := range s.creatures {
		if name != "" && !strings.Contains(strings.ToLower(c.Name), name) {
			continue
		}
		if _, fav := favs[c.ID]; q.FavoritesOnly && !fav {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	page := models.CreaturePage{Count: len(matched), Data: []models.Creature{}}
	start := (q.Page - 1) * q.Limit
	if start >= len(matched) {
		return page, nil
	}
	end := min(start+q.Limit, len(matched))

	for _, c := range matched[start:end] {
		_, fav := favs[c.ID]
		page.Data = append(page.Data, models.Creature{
			ID: c.ID, Name: c.Name, Img: c.Img, Lore: c.Lore, IsFavoriteToUser: fav,
		})
	}
	return page, nil
}

func (s *Store) AddFavorite(userID, creatureID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.creatures[creatureID]; !ok {
		return ErrCreatureNotFound
	}
	favs := s.favourites[userID]
	if favs == nil {
		favs = make(map[int64]*favourite)
		s.favourites[userID] = favs
	}
	if _, ok := favs[creatureID]; ok {
		return ErrAlreadyFavorite
	}
	favs[creatureID] = &favourite{}
	return nil
}

func (s *Store) RemoveFavorite(userID, creatureID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.favourites[userID][creatureID]; !ok {
		return ErrNotFavorite
	}
	delete(s.favourites[userID], creatureID)
	return nil
}

func (s *Store) Details(userID, creatureID int64) (models.CreatureDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.creatures[creatureID]; !ok {
		return models.CreatureDetails{}, ErrCreatureNotFound
	}
	if fav, ok := s.favourites[userID][creatureID]; ok {
		return models.CreatureDetails{BackgroundImg: fav.Background}, nil
	}
	return models.CreatureDetails{}, nil
}

// SetBackground sets (or with nil, resets) the background of a favourite.
func (s *Store) SetBackground(userID, creatureID int64, img *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fav, ok := s.favourites[userID][creatureID]
	if !ok {
		return ErrNotFavorite
	}
	fav.Background = img
	return nil
}

func (s *Store) AddCreature(in models.CreatureInput) (models.Creature, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Creature{}, ErrMissingField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := &creature{ID: s.nextArcane, Name: in.Name, Img: in.Img}
	if in.Lore != nil {
		c.Lore = *in.Lore
	}
	s.creatures[c.ID] = c
	s.nextArcane++
	return models.Creature{ID: c.ID, Name: c.Name, Img: c.Img, Lore: c.Lore}, nil
}

func (s *Store) EditCreature(id int64, in models.CreatureInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrMissingField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.creatures[id]
	if !ok {
		return ErrCreatureNotFound
	}
	c.Name = in.Name
	if in.Lore != nil {
		c.Lore = *in.Lore
	}
	if in.Img != nil {
		c.Img = in.Img
	}
	return nil
}
