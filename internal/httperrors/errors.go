// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for backend requests.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	apperrors "restadmin/cli/internal/errors"
)

// Cause is the detected reason behind a network error.
type Cause int

const (
	CauseUnknown Cause = iota
	CauseTimeout
	CauseDNS
	CauseRefused
	CauseTLS
	CauseServer
	CauseClient
)

// FormatNetworkError prints troubleshooting advice for err when it is a network error
// and returns err unchanged so callers can propagate it.
func FormatNetworkError(err error, context, host string) error {
	if err == nil || !apperrors.IsKind(err, apperrors.Network) {
		return err
	}
	displayErrorMessage(err, context, host)
	return err
}

// Classify detects the cause of a network error.
func Classify(err error) Cause {
	if err == nil {
		return CauseUnknown
	}
	var appErr *apperrors.E
	if errors.As(err, &appErr) && appErr.Status != 0 {
		if appErr.Status >= 500 {
			return CauseServer
		}
		return CauseClient
	}
	switch {
	case isTimeoutError(err):
		return CauseTimeout
	case isDNSError(err):
		return CauseDNS
	case isConnectionRefusedError(err):
		return CauseRefused
	case isSSLError(err):
		return CauseTLS
	}
	return CauseUnknown
}

// displayErrorMessage shows a formatted error message to the user based on error type.
func displayErrorMessage(err error, context, host string) {
	switch Classify(err) {
	case CauseTimeout:
		showTimeoutError(context)
	case CauseDNS:
		showDNSError(context, host)
	case CauseRefused:
		showConnectionRefusedError(context, host)
	case CauseTLS:
		showSSLError(context)
	case CauseServer:
		showServerError(context, err.Error())
	default:
		showGenericError(context, host, err.Error())
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate")
}

func showTimeoutError(context string) {
	pterm.Printf("⏱️  Connection timeout while %s\n", context)
	pterm.Println()
	pterm.Println("The backend took too long to respond. This could mean:")
	pterm.Println("  • The listing query is slow (try a narrower filter)")
	pterm.Println("  • The backend is under heavy load")
	pterm.Println("  • The configured timeout is too short")
	pterm.Println()
}

func showDNSError(context, host string) {
	pterm.Printf("🌐 Cannot resolve %s while %s\n", host, context)
	pterm.Println()
	pterm.Println("Check that base_url points to a reachable host.")
	pterm.Println()
}

func showConnectionRefusedError(context, host string) {
	pterm.Printf("🚫 Connection refused by %s while %s\n", host, context)
	pterm.Println()
	pterm.Println("The backend is not accepting connections. This could mean:")
	pterm.Println("  • The admin backend is not running")
	pterm.Println("  • Wrong port in base_url")
	pterm.Println()
}

func showSSLError(context string) {
	pterm.Printf("🔒 Secure connection failed while %s\n", context)
	pterm.Println()
	pterm.Println("Cannot establish a secure HTTPS connection. Check the certificate,")
	pterm.Println("proxy settings and the system clock.")
	pterm.Println()
}

func showServerError(context, details string) {
	pterm.Printf("⚠️  Server error while %s\n", context)
	pterm.Println()
	pterm.Println("The backend failed to answer the request. Its logs should have the details.")
	pterm.Debug.Printf("Technical details: %s\n", abbreviate(details))
	pterm.Println()
}

func showGenericError(context, host, details string) {
	pterm.Printf("❌ Cannot reach %s while %s\n", host, context)
	pterm.Println()
	if details != "" {
		pterm.Debug.Printf("Technical details: %s\n", abbreviate(details))
		pterm.Println()
	}
}

func abbreviate(s string) string {
	if len(s) > 100 {
		return s[:100] + "..."
	}
	return s
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}

// Describe renders a one-line summary, used where multi-line advice does not fit (TUI).
func Describe(err error) string {
	switch Classify(err) {
	case CauseTimeout:
		return "backend timed out"
	case CauseDNS:
		return "cannot resolve backend host"
	case CauseRefused:
		return "backend refused the connection"
	case CauseTLS:
		return "TLS handshake failed"
	case CauseServer:
		return "backend server error"
	case CauseClient:
		return "backend rejected the request"
	}
	return fmt.Sprintf("%v", err)
}
