// Package ssh forwards a local TCP port to the warehouse through a
// bastion host, for deployments where the warehouse is not directly
// reachable.
//
// Design decisions:
//   - golang.org/x/crypto/ssh, key-based auth only (optional passphrase).
//   - The local listener binds to 127.0.0.1:0; the caller reconnects its
//     database client to the returned endpoint.
//   - Start honors the caller's context for the dial; forwarding itself
//     runs until Stop closes the listener.
package ssh

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"sync"

	"github.com/fleetops/fleetchat/config"
	"golang.org/x/crypto/ssh"
)

// Addr is the local endpoint the tunnel listens on.
type Addr struct {
	Host string
	Port int
}

// Tunnel is one active local-to-warehouse port forward.
type Tunnel struct {
	bastionAddr string
	targetAddr  string
	clientCfg   *ssh.ClientConfig

	mu       sync.Mutex
	client   *ssh.Client
	listener net.Listener
	conns    sync.WaitGroup
	closed   chan struct{}
}

// NewTunnel prepares a tunnel to target host:port via the configured
// bastion. Nothing is dialed until Start.
func NewTunnel(cfg config.SSHConfig, targetHost string, targetPort int) (*Tunnel, error) {
	signer, err := loadSigner(cfg)
	if err != nil {
		return nil, err
	}

	return &Tunnel{
		bastionAddr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		targetAddr:  net.JoinHostPort(targetHost, strconv.Itoa(targetPort)),
		clientCfg: &ssh.ClientConfig{
			User: cfg.User,
			Auth: []ssh.AuthMethod{ssh.PublicKeys(signer)},
			// TODO: verify against known_hosts instead of accepting any key
			HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		},
		closed: make(chan struct{}),
	}, nil
}

// Start connects to the bastion and begins forwarding. It returns the
// local endpoint the warehouse client should connect to.
func (t *Tunnel) Start(ctx context.Context) (*Addr, error) {
	raw, err := (&net.Dialer{}).DialContext(ctx, "tcp", t.bastionAddr)
	if err != nil {
		return nil, fmt.Errorf("dial bastion %s: %w", t.bastionAddr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(raw, t.bastionAddr, t.clientCfg)
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("ssh handshake with %s: %w", t.bastionAddr, err)
	}
	client := ssh.NewClient(sshConn, chans, reqs)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("local listen: %w", err)
	}

	t.mu.Lock()
	t.client = client
	t.listener = listener
	t.mu.Unlock()

	go t.serve()

	port := listener.Addr().(*net.TCPAddr).Port
	return &Addr{Host: "127.0.0.1", Port: port}, nil
}

// Stop closes the listener and the SSH connection and waits for
// in-flight forwards to drain.
func (t *Tunnel) Stop() {
	t.mu.Lock()
	select {
	case <-t.closed:
		t.mu.Unlock()
		return
	default:
	}
	close(t.closed)
	if t.listener != nil {
		t.listener.Close()
	}
	t.mu.Unlock()

	t.conns.Wait()

	t.mu.Lock()
	if t.client != nil {
		t.client.Close()
	}
	t.mu.Unlock()
}

func (t *Tunnel) serve() {
	for {
		local, err := t.listener.Accept()
		if err != nil {
			select {
			case <-t.closed:
				return
			default:
				continue
			}
		}
		t.conns.Add(1)
		go func() {
			defer t.conns.Done()
			t.pipe(local)
		}()
	}
}

// pipe relays one local connection to the warehouse through the bastion.
func (t *Tunnel) pipe(local net.Conn) {
	defer local.Close()

	remote, err := t.client.Dial("tcp", t.targetAddr)
	if err != nil {
		return
	}
	defer remote.Close()

	done := make(chan struct{}, 2)
	relay := func(dst, src net.Conn) {
		_, _ = io.Copy(dst, src)
		done <- struct{}{}
	}
	go relay(remote, local)
	go relay(local, remote)

	// Tear both directions down as soon as either side finishes.
	<-done
}

func loadSigner(cfg config.SSHConfig) (ssh.Signer, error) {
	if cfg.KeyPath == "" {
		return nil, fmt.Errorf("no SSH key configured (set WAREHOUSE_SSH_KEY)")
	}

	keyBytes, err := os.ReadFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("read ssh key %s: %w", cfg.KeyPath, err)
	}

	if cfg.KeyPassphrase != "" {
		signer, err := ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(cfg.KeyPassphrase))
		if err != nil {
			return nil, fmt.Errorf("parse ssh key: %w", err)
		}
		return signer, nil
	}

	signer, err := ssh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse ssh key: %w", err)
	}
	return signer, nil
}
