package whoisclient

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"
)

func TestQueryReadsUntilClose(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	gotQuery := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		line, err := bufio.NewReader(conn).ReadString('\n')
		if err != nil {
			return
		}
		gotQuery <- line
		conn.Write([]byte("Domain Name: EXAMPLE.COM\r\n"))
		time.Sleep(20 * time.Millisecond)
		conn.Write([]byte("Registrar: Example Registrar\r\n"))
	}()

	client := New(Options{Timeout: 2 * time.Second})
	raw, _, err := client.Query(context.Background(), ln.Addr().String(), "example.com", "domain {domain}", false)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if line := <-gotQuery; line != "domain example.com\r\n" {
		t.Fatalf("unexpected query line: %q", line)
	}
	if !strings.Contains(raw, "Domain Name: EXAMPLE.COM") || !strings.Contains(raw, "Registrar: Example Registrar") {
		t.Fatalf("response not fully read: %q", raw)
	}
}

func TestQueryBareSendsValueVerbatim(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	gotQuery := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		line, err := bufio.NewReader(conn).ReadString('\n')
		if err != nil {
			return
		}
		gotQuery <- line
		conn.Write([]byte("Domain Name: example.com\r\n"))
	}()

	client := New(Options{Timeout: 2 * time.Second})
	if _, _, err := client.Query(context.Background(), ln.Addr().String(), "example.com", "domain {domain}", true); err != nil {
		t.Fatalf("query: %v", err)
	}
	if line := <-gotQuery; line != "example.com\r\n" {
		t.Fatalf("expected bare query, got %q", line)
	}
}

func TestQueryTimeoutOnSilentServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	// Accept and hold the connection without ever writing or closing.
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(2 * time.Second)
	}()

	client := New(Options{Timeout: 150 * time.Millisecond})
	start := time.Now()
	_, _, err = client.Query(context.Background(), ln.Addr().String(), "example.com", "domain {domain}", false)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Fatalf("expected timeout kind, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not enforced, took %s", time.Since(start))
	}
}

func TestQueryConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	client := New(Options{Timeout: 500 * time.Millisecond})
	_, _, err = client.Query(context.Background(), addr, "example.com", "domain {domain}", false)
	if err == nil {
		t.Fatalf("expected connection error")
	}
	var qe *QueryError
	if !errors.As(err, &qe) || qe.Kind != KindConnect {
		t.Fatalf("expected connect kind, got %v", err)
	}
}

func TestQueryCancellationAbortsRead(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		conn.Write([]byte("partial"))
		time.Sleep(2 * time.Second)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	client := New(Options{Timeout: 5 * time.Second})
	start := time.Now()
	_, _, err = client.Query(ctx, ln.Addr().String(), "example.com", "domain {domain}", false)
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("cancellation did not abort the read, took %s", time.Since(start))
	}
}

func TestQueryResponseCap(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		conn.Write([]byte(strings.Repeat("x", 64)))
	}()

	client := New(Options{Timeout: time.Second, MaxResponseBytes: 16})
	raw, _, err := client.Query(context.Background(), ln.Addr().String(), "example.com", "domain {domain}", false)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(raw) != 16 {
		t.Fatalf("expected capped response of 16 bytes, got %d", len(raw))
	}
}

func TestNormalizeServer(t *testing.T) {
	cases := map[string]string{
		"whois.iana.org":    "whois.iana.org:43",
		"whois.nic.io:4343": "whois.nic.io:4343",
		"2001:db8::1":       "[2001:db8::1]:43",
		"[2001:db8::1]":     "[2001:db8::1]:43",
		"[2001:db8::1]:43":  "[2001:db8::1]:43",
		"127.0.0.1":         "127.0.0.1:43",
	}
	for in, want := range cases {
		if got := NormalizeServer(in); got != want {
			t.Fatalf("NormalizeServer(%q) = %q, want %q", in, got, want)
		}
	}
	if got := NormalizeServer(""); got != "" {
		t.Fatalf("NormalizeServer of empty host = %q, want empty", got)
	}
}
