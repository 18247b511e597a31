package conversation

import (
	"context"
	"time"
)

const (
	// DefaultConversationInterval matches the ticket page refresh cadence.
	DefaultConversationInterval = 2500 * time.Millisecond
	// DefaultUnreadInterval matches the unread badge refresh cadence.
	DefaultUnreadInterval = 10 * time.Second
)

// PollerConfig configures a Poller. Zero intervals fall back to the
// defaults; nil handlers disable the corresponding poll.
type PollerConfig struct {
	TicketID             uint
	ConversationInterval time.Duration
	UnreadInterval       time.Duration

	// OnConversation receives the full message snapshot on every tick.
	OnConversation func(messages []Message)
	// OnUnreadTotal receives the unread badge value on every tick.
	OnUnreadTotal func(count UnreadCount)
	// OnError receives poll failures. The poller keeps running; a failed
	// tick is simply retried on the next one.
	OnError func(err error)
}

// Poller periodically fetches a ticket conversation and the unread total.
type Poller struct {
	client *Client
	cfg    PollerConfig
}

func NewPoller(client *Client, cfg PollerConfig) *Poller {
	if cfg.ConversationInterval <= 0 {
		cfg.ConversationInterval = DefaultConversationInterval
	}
	if cfg.UnreadInterval <= 0 {
		cfg.UnreadInterval = DefaultUnreadInterval
	}
	return &Poller{
		client: client,
		cfg:    cfg,
	}
}

// Run polls until ctx is canceled. Both polls fire once immediately, then on
// their intervals. Run blocks; start it in a goroutine if needed.
func (p *Poller) Run(ctx context.Context) {
	conversationTicker := time.NewTicker(p.cfg.ConversationInterval)
	defer conversationTicker.Stop()
	unreadTicker := time.NewTicker(p.cfg.UnreadInterval)
	defer unreadTicker.Stop()

	p.pollConversation(ctx)
	p.pollUnread(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-conversationTicker.C:
			p.pollConversation(ctx)
		case <-unreadTicker.C:
			p.pollUnread(ctx)
		}
	}
}

func (p *Poller) pollConversation(ctx context.Context) {
	if p.cfg.OnConversation == nil {
		return
	}

	messages, err := p.client.ListConversation(ctx, p.cfg.TicketID)
	if err != nil {
		p.reportError(err)
		return
	}
	p.cfg.OnConversation(messages)
}

func (p *Poller) pollUnread(ctx context.Context) {
	if p.cfg.OnUnreadTotal == nil {
		return
	}

	count, err := p.client.UnreadTotal(ctx)
	if err != nil {
		p.reportError(err)
		return
	}
	p.cfg.OnUnreadTotal(*count)
}

func (p *Poller) reportError(err error) {
	if p.cfg.OnError != nil {
		p.cfg.OnError(err)
	}
}
