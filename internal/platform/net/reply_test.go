package net_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	perr "muzzle/internal/platform/errors"
	pnet "muzzle/internal/platform/net"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name   string
		build  func() (int, pnet.Envelope)
		status int
	}{
		{"ok", func() (int, pnet.Envelope) { return pnet.OK(map[string]bool{"profane": true}, "req-1") }, http.StatusOK},
		{"accepted", func() (int, pnet.Envelope) { return pnet.Status(http.StatusAccepted, []int{1}, "req-1") }, http.StatusAccepted},
		{"unavailable", func() (int, pnet.Envelope) { return pnet.Status(http.StatusServiceUnavailable, "fail", "req-1") }, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := tc.build()
			if status != tc.status || env.StatusCode != tc.status || env.Status != http.StatusText(tc.status) {
				t.Fatalf("status mismatch: %d %+v", status, env)
			}
			if env.RequestID != "req-1" || env.Data == nil || env.Error != "" {
				t.Fatalf("envelope = %+v", env)
			}
		})
	}
}

func TestError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    perr.ErrorCode
		message string
		field   string
	}{
		{"nil is ok", nil, http.StatusOK, 0, "", ""},
		{"validation", perr.WithField(perr.Validationf("text is a required field"), "text"), http.StatusBadRequest, perr.ErrorCodeValidation, "text is a required field", "text"},
		{"invalid argument", perr.InvalidArgf("unknown split mode"), http.StatusUnprocessableEntity, perr.ErrorCodeInvalidArgument, "unknown split mode", ""},
		{"too large", perr.WithField(perr.TooLargef("text exceeds 65536 bytes"), "text"), http.StatusRequestEntityTooLarge, perr.ErrorCodeTooLarge, "text exceeds 65536 bytes", "text"},
		{"unavailable", perr.Unavailablef("verdict log needs postgres"), http.StatusServiceUnavailable, perr.ErrorCodeUnavailable, "verdict log needs postgres", ""},
		{"wrapped keeps message not cause", perr.Wordlistf(errors.New("regexp: missing )"), "wordlist: compile"), http.StatusUnprocessableEntity, perr.ErrorCodeWordlist, "wordlist: compile", ""},
		{"foreign is hidden", fmt.Errorf("dial postgres://user:secret@db: refused"), http.StatusInternalServerError, perr.ErrorCodeUnknown, "internal error", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := pnet.Error(tc.err, "req-9")
			if status != tc.status || env.StatusCode != tc.status {
				t.Fatalf("status %d env %d want %d", status, env.StatusCode, tc.status)
			}
			if env.Code != tc.code || env.Error != tc.message || env.Field != tc.field {
				t.Fatalf("envelope = %+v", env)
			}
			if env.RequestID != "req-9" || env.Data != nil {
				t.Fatalf("envelope = %+v", env)
			}
			if tc.err != nil && env.Name != tc.code.String() {
				t.Fatalf("name = %q", env.Name)
			}
		})
	}
}
