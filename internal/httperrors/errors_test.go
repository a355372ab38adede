// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"context"
	"errors"
	"net"
	"syscall"
	"testing"

	apperrors "restadmin/cli/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Cause
	}{
		{name: "nil", err: nil, want: CauseUnknown},
		{name: "deadline", err: apperrors.Wrap(apperrors.Network, "GET", context.DeadlineExceeded), want: CauseTimeout},
		{name: "dns", err: apperrors.Wrap(apperrors.Network, "GET", &net.DNSError{Err: "no such host", Name: "nope.invalid"}), want: CauseDNS},
		{name: "refused", err: apperrors.Wrap(apperrors.Network, "GET", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}), want: CauseRefused},
		{name: "tls", err: errors.New("tls: failed to verify certificate: x509: unknown authority"), want: CauseTLS},
		{name: "server status", err: apperrors.Status(502, "GET /api/users"), want: CauseServer},
		{name: "client status", err: apperrors.Status(404, "GET /api/users"), want: CauseClient},
		{name: "other", err: errors.New("boom"), want: CauseUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractHostFromURL(t *testing.T) {
	if got := ExtractHostFromURL("http://localhost:5000/admin"); got != "localhost:5000" {
		t.Errorf("got %q", got)
	}
	if got := ExtractHostFromURL("::bad"); got != "server" {
		t.Errorf("got %q", got)
	}
}
