package logging

import (
	"bufio"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

func TestLogstashWriterForwardsLines(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan string, 2)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			received <- scanner.Text()
		}
	}()

	w, err := NewLogstashWriter(ln.Addr().String())
	if err != nil {
		t.Fatalf("NewLogstashWriter returned error: %v", err)
	}
	if _, err := w.Write([]byte(`{"msg":"one"}`)); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if _, err := w.Write([]byte("{\"msg\":\"two\"}\n")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	for _, want := range []string{`{"msg":"one"}`, `{"msg":"two"}`} {
		select {
		case got := <-received:
			if got != want {
				t.Fatalf("expected %s, got %s", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
	_ = w.Close()

	if _, err := w.Write([]byte("late")); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected ErrClosedPipe after Close, got %v", err)
	}
}

func TestLogstashWriterDropsWhileUnreachable(t *testing.T) {
	w, err := NewLogstashWriter("unreachable:1", WithRetryInterval(time.Hour))
	if err != nil {
		t.Fatalf("NewLogstashWriter returned error: %v", err)
	}
	w.dial = func(string, string, time.Duration) (net.Conn, error) {
		return nil, errors.New("refused")
	}

	for i := 0; i < 3; i++ {
		n, err := w.Write([]byte("line"))
		if err != nil || n != 4 {
			t.Fatalf("expected Write to report success, got %d, %v", n, err)
		}
	}
	_ = w.CloseTimeout(time.Second)
	if w.Dropped() != 3 {
		t.Fatalf("expected 3 dropped lines, got %d", w.Dropped())
	}
}

func TestLogstashWriterRejectsEmptyAddress(t *testing.T) {
	if _, err := NewLogstashWriter("  "); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestLogstashWriterOptionsApply(t *testing.T) {
	w, err := NewLogstashWriter("unreachable:1",
		WithQueueSize(2),
		WithDialTimeout(50*time.Millisecond),
		WithWriteTimeout(20*time.Millisecond),
		WithRetryInterval(time.Hour),
	)
	if err != nil {
		t.Fatalf("NewLogstashWriter returned error: %v", err)
	}
	defer w.CloseTimeout(time.Second)

	if cap(w.queue) != 2 {
		t.Fatalf("expected queue capacity 2, got %d", cap(w.queue))
	}
	if w.dialTimeout != 50*time.Millisecond || w.writeTimeout != 20*time.Millisecond {
		t.Fatalf("unexpected timeouts dial=%s write=%s", w.dialTimeout, w.writeTimeout)
	}
}
