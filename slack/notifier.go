package slack

import (
	"context"

	"github.com/warp/hours-sentinel/cadence"
	"github.com/warp/hours-sentinel/calendar"
	"github.com/warp/hours-sentinel/shortfall"
)

// Notifier renders and posts a shortfall report to one channel. It satisfies
// the runner's Notifier interface.
type Notifier struct {
	Client  *Client
	Channel string
}

func NewNotifier(client *Client, channel string) *Notifier {
	return &Notifier{Client: client, Channel: channel}
}

// Notify looks up workspace members for mention matching, renders the
// report, and posts it. A members lookup failure aborts the notification;
// better no message than one that pings nobody.
func (n *Notifier) Notify(ctx context.Context, c cadence.Cadence, r calendar.Range, records []shortfall.Record) error {
	members, err := n.Client.ListMembers(ctx)
	if err != nil {
		return err
	}
	blocks := BuildReport(c, r, records, MemberIndex(members))
	return n.Client.PostMessage(ctx, n.Channel, blocks)
}
