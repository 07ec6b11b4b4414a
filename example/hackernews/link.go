package main

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/LiuXiaoZhuang/graphql"
)

type (
	Link struct {
		_           graphql.TagHolder `egg:"type# a link posted by a user"`
		ID          graphql.ID        `egg:"id"`
		Description string
		URL         string `egg:"url"`
		Posted      graphql.Time
		PostedBy    *User
	}

	// Feed is the query controller
	Feed struct {
		Feed func(first *int) []*Link           `egg:"feed(first # number of links to return)"`
		Link func(id graphql.ID) (*Link, error) `egg:"link(id)"`
	}

	// Poster is the controller of the post mutation
	Poster struct {
		Post func(ctx context.Context, url, description string) (*Link, error) `egg:"post(url,description)"`
	}

	// UserLinks adds the links a user has posted to the User type
	UserLinks struct {
		_     *User                    `egg:"extend"`
		Links func(user *User) []*Link `egg:",source"`
	}

	// Links stores the posted links (in order of posting)
	Links struct {
		mu    sync.RWMutex
		links []*Link
		users *Users
	}
)

func NewLinks(users *Users) *Links {
	return &Links{users: users}
}

func (s *Links) Query() *Feed {
	return &Feed{Feed: s.Feed, Link: s.Link}
}

func (s *Links) Mutation() *Poster {
	return &Poster{Post: s.Post}
}

func (s *Links) UserLinks() *UserLinks {
	return &UserLinks{Links: s.PostedBy}
}

// Feed returns the most recent links
func (s *Links) Feed(first *int) []*Link {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := make([]*Link, 0, len(s.links))
	for i := len(s.links) - 1; i >= 0 && (first == nil || len(r) < *first); i-- {
		r = append(r, s.links[i])
	}
	return r
}

func (s *Links) Link(ID graphql.ID) (*Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, link := range s.links {
		if link.ID == ID {
			return link, nil
		}
	}
	return nil, errors.New("unknown link: " + string(ID))
}

// PostedBy returns the links posted by a user
func (s *Links) PostedBy(user *User) []*Link {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var r []*Link
	for _, link := range s.links {
		if link.PostedBy.ID == user.ID {
			r = append(r, link)
		}
	}
	return r
}

// Post creates a new link for the currently logged-in user
func (s *Links) Post(ctx context.Context, url, description string) (*Link, error) {
	userID, ok := CurrentUser(ctx)
	if !ok || userID == "" {
		return nil, errors.New("you must be logged in to post")
	}
	user, ok := s.users.Get(userID)
	if !ok {
		return nil, errors.New("unknown user:" + string(userID))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	link := &Link{
		ID:          graphql.ID("L" + strconv.Itoa(len(s.links)+1)),
		Description: description,
		URL:         url,
		Posted:      graphql.Time(time.Now()),
		PostedBy:    user,
	}
	s.links = append(s.links, link)
	return link, nil
}
