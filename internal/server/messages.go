package server

import (
	"errors"
	"fmt"

	"github.com/muurk/maskedit/internal/config"
	"github.com/muurk/maskedit/internal/mask"
	"github.com/muurk/maskedit/internal/session"
)

// Op names a request type.
type Op string

const (
	OpOpen         Op = "open"
	OpCommand      Op = "command"
	OpTokens       Op = "tokens"
	OpSetMask      Op = "set_mask"
	OpSetSelection Op = "set_selection"
)

// Request is one client message.
type Request struct {
	ID        int                `json:"id"`
	Op        Op                 `json:"op"`
	Profile   string             `json:"profile,omitempty"`
	Mask      string             `json:"mask,omitempty"`
	Text      string             `json:"text,omitempty"`
	Reset     bool               `json:"reset,omitempty"`
	Command   *session.Command   `json:"command,omitempty"`
	Selection *session.Selection `json:"selection,omitempty"`
}

// Response answers one Request.
type Response struct {
	ID     int             `json:"id"`
	Op     Op              `json:"op"`
	Error  string          `json:"error,omitempty"`
	Output *session.Output `json:"output,omitempty"`
	Tokens []mask.Info     `json:"tokens,omitempty"`
}

var errNotOpen = errors.New("no field open, send an open request first")

// fieldSession is the per-connection state.
type fieldSession struct {
	registry *config.Registry
	profile  string
	engine   *session.Engine
}

// handle executes req against the session and builds the response.
func (s *fieldSession) handle(req Request) Response {
	resp := Response{ID: req.ID, Op: req.Op}
	out, err := s.dispatch(req, &resp)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Output = out
	return resp
}

func (s *fieldSession) dispatch(req Request, resp *Response) (*session.Output, error) {
	if req.Op != OpOpen && s.engine == nil {
		return nil, errNotOpen
	}

	switch req.Op {
	case OpOpen:
		eng, err := s.open(req)
		if err != nil {
			return nil, err
		}
		s.engine = eng
		resp.Tokens = mask.Infos(eng.Tokens())
		return s.snapshot(), nil

	case OpCommand:
		if req.Command == nil {
			return nil, errors.New("command request without command")
		}
		out, err := s.engine.Execute(*req.Command)
		if err != nil {
			return nil, err
		}
		return &out, nil

	case OpTokens:
		resp.Tokens = mask.Infos(s.engine.Tokens())
		return s.snapshot(), nil

	case OpSetMask:
		if err := s.engine.SetMask(req.Mask, req.Text, req.Reset); err != nil {
			return nil, err
		}
		resp.Tokens = mask.Infos(s.engine.Tokens())
		return s.snapshot(), nil

	case OpSetSelection:
		if req.Selection == nil {
			return nil, errors.New("set_selection request without selection")
		}
		s.engine.SetSelection(*req.Selection)
		return s.snapshot(), nil

	default:
		return nil, fmt.Errorf("unknown op %q", req.Op)
	}
}

// open builds an engine from a profile name or a raw mask.
func (s *fieldSession) open(req Request) (*session.Engine, error) {
	if req.Profile != "" {
		p, err := s.registry.GetProfile(req.Profile)
		if err != nil {
			return nil, err
		}
		eng, err := p.NewEngine()
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", req.Profile, err)
		}
		s.profile = req.Profile
		if req.Text != "" {
			if err := eng.SetMask(eng.Mask(), req.Text, false); err != nil {
				return nil, err
			}
		}
		return eng, nil
	}
	if req.Mask == "" {
		return nil, errors.New("open request needs a profile or a mask")
	}
	s.profile = ""
	return session.New(req.Mask, req.Text, session.DefaultConfig())
}

func (s *fieldSession) snapshot() *session.Output {
	return &session.Output{
		Text:      s.engine.Text(),
		Mask:      s.engine.Mask(),
		Selection: s.engine.Selection(),
	}
}
