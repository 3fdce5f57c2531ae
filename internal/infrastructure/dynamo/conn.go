package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/friskytrails/api/internal/config"
)

// ErrNoRegion is returned by Ensure when the AWS region is not configured.
// It is a configuration error, not a transient one: retrying cannot help.
var ErrNoRegion = errors.New("AWS_REGION is not configured")

// probeTimeout bounds the connectivity check of a single establish attempt.
const probeTimeout = 5 * time.Second

type attempt struct {
	done   chan struct{}
	client *dynamodb.Client
	err    error
}

// Conn memoizes a single established DynamoDB client per process.
//
// Under concurrent cold-start requests only one establish attempt is ever
// outstanding: the first caller starts it and every other caller awaits the
// same attempt. The slot is cleared on terminal failure so a later call
// retries, and on Invalidate so the next call re-establishes.
type Conn struct {
	cfg *config.Config

	mu        sync.Mutex
	client    *dynamodb.Client
	connected bool
	inflight  *attempt

	// dial is swappable in tests.
	dial func(ctx context.Context) (*dynamodb.Client, error)
}

// NewConn creates an unconnected Conn. No network activity happens until
// the first Ensure call.
func NewConn(cfg *config.Config) *Conn {
	c := &Conn{cfg: cfg}
	c.dial = c.establish
	return c
}

// Ensure resolves once a usable client exists. Safe for concurrent use.
func (c *Conn) Ensure(ctx context.Context) (*dynamodb.Client, error) {
	c.mu.Lock()
	if c.connected {
		client := c.client
		c.mu.Unlock()
		return client, nil
	}

	if a := c.inflight; a != nil {
		c.mu.Unlock()
		select {
		case <-a.done:
			return a.client, a.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	a := &attempt{done: make(chan struct{})}
	c.inflight = a
	c.mu.Unlock()

	a.client, a.err = c.dial(ctx)

	c.mu.Lock()
	if a.err == nil {
		c.client = a.client
		c.connected = true
	}
	c.inflight = nil
	c.mu.Unlock()
	close(a.done)

	if a.err != nil {
		return nil, a.err
	}
	return a.client, nil
}

// Invalidate drops the cached client so the next Ensure reconnects.
// Called when the driver reports the link is gone.
func (c *Conn) Invalidate() {
	c.mu.Lock()
	c.connected = false
	c.client = nil
	c.mu.Unlock()
	slog.Warn("dynamodb connection invalidated; will re-establish on next request")
}

// Ready reports the cached ready-state without touching the network.
func (c *Conn) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// establish builds the client and verifies connectivity with a bounded probe.
func (c *Conn) establish(ctx context.Context) (*dynamodb.Client, error) {
	if c.cfg.AWSRegion == "" {
		return nil, ErrNoRegion
	}

	client, err := newClient(ctx, c.cfg)
	if err != nil {
		return nil, err
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if _, err := client.ListTables(probeCtx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)}); err != nil {
		return nil, fmt.Errorf("dynamodb connectivity probe: %w", err)
	}

	slog.Info("dynamodb connection established", "region", c.cfg.AWSRegion)
	return client, nil
}

// newClient creates a DynamoDB client. When cfg.AWSEndpointURL is set
// (LocalStack), it overrides the endpoint so all traffic goes to the local
// instance.
func newClient(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	clientOpts := []func(*dynamodb.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}

	return dynamodb.NewFromConfig(awsCfg, clientOpts...), nil
}
