package main

import (
	"errors"
	"math/rand"
	"strconv"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/LiuXiaoZhuang/graphql"
)

type (
	User struct {
		_        graphql.TagHolder `egg:"type# a registered user"`
		ID       graphql.ID        `egg:"id"`
		Name     string
		Email    string
		password string
	}

	AuthPayload struct {
		_     graphql.TagHolder `egg:"type"`
		Token string
		User  *User
	}

	// Auth is the controller of the signup and login mutations
	Auth struct {
		Signup func(email, password, name string) (*AuthPayload, error) `egg:"signup(email,password,name)"`
		Login  func(email, password string) (*AuthPayload, error)       `egg:"login(email,password)"`
	}

	// Users stores the registered users
	Users struct {
		mu    sync.RWMutex
		users map[graphql.ID]*User
	}
)

func NewUsers() *Users {
	return &Users{users: make(map[graphql.ID]*User)}
}

func (s *Users) Get(ID graphql.ID) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[ID]
	return user, ok
}

// Controller returns the mutation controller for signing up and logging in
func (s *Users) Controller() *Auth {
	return &Auth{Signup: s.Signup, Login: s.Login}
}

// Signup creates a new user.
func (s *Users) Signup(email, password, name string) (*AuthPayload, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ID := s.uniqueID() // get a new ID for a new user
	tokenString, err := GetToken(ID)
	if err != nil {
		return nil, err
	}
	s.users[ID] = &User{
		ID:       ID,
		Name:     name,
		Email:    email,
		password: string(hash),
	}
	return &AuthPayload{Token: tokenString, User: s.users[ID]}, nil
}

// Login authenticates a user.
func (s *Users) Login(email, password string) (*AuthPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ID, user := range s.users {
		if user.Email == email {
			if err := bcrypt.CompareHashAndPassword([]byte(user.password), []byte(password)); err == nil {
				tokenString, err := GetToken(ID)
				if err != nil {
					return nil, err
				}
				return &AuthPayload{Token: tokenString, User: user}, nil
			}
			// don't break in case of multiple logins with the same email addr.
		}
	}
	return nil, errors.New("invalid email or password")
}

// uniqueID returns a unique user ID (with a "U" prefix)
func (s *Users) uniqueID() graphql.ID {
	for {
		ID := graphql.ID("U" + strconv.Itoa(rand.Int()))
		if _, ok := s.users[ID]; !ok {
			return ID
		}
	}
}
