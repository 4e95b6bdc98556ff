package notifier

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/collection"
	"github.com/x-xyz/checkout/domain/nftitem"
	"github.com/x-xyz/checkout/domain/purchase"
	"golang.org/x/xerrors"
)

const scheduleTimeout = 3 * time.Second

// Sender is the part of discordgo.Session used to post
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type DiscordCfg struct {
	BotKey    string
	ChannelId string
	// AssetUrl is formatted with chain id, contract and token id
	AssetUrl string
}

type Discord struct {
	sender    Sender
	channelId string
	assetUrl  string
	pool      *goroutines.Pool
}

// NewDiscord posts purchase events to a discord channel
func NewDiscord(cfg DiscordCfg) (*Discord, error) {
	session, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.BotKey))
	if err != nil {
		return nil, err
	}
	return NewDiscordWithSender(session, cfg), nil
}

func NewDiscordWithSender(sender Sender, cfg DiscordCfg) *Discord {
	return &Discord{
		sender:    sender,
		channelId: cfg.ChannelId,
		assetUrl:  cfg.AssetUrl,
		pool:      goroutines.NewPool(4, goroutines.WithTaskQueueLength(256), goroutines.WithPreAllocWorkers(1)),
	}
}

// Publish queues the message, delivery failures are only logged
func (d *Discord) Publish(c ctx.Ctx, e purchase.Event) error {
	msg, err := d.embedOf(e)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "type": e.Type}).Warn("no discord message for event")
		return nil
	}

	bg := ctx.Detach(c)
	if err := d.pool.ScheduleWithTimeout(scheduleTimeout, func() {
		if _, err := d.sender.ChannelMessageSendEmbed(d.channelId, msg); err != nil {
			bg.WithFields(log.Fields{
				"err":       err,
				"sessionId": e.Session.Id,
			}).Error("discord.ChannelMessageSendEmbed failed")
		}
	}); err != nil {
		c.WithField("err", err).Error("workerPool.ScheduleWithTimeout failed")
		return err
	}
	return nil
}

// Close releases the workers
func (d *Discord) Close() {
	d.pool.Release()
}

func (d *Discord) embedOf(e purchase.Event) (*discordgo.MessageEmbed, error) {
	s := e.Session
	var title string
	var color int
	switch e.Type {
	case purchase.EventCreated:
		title, color = "Purchase started", 0x3498db
	case purchase.EventAttestationSubmitted:
		title, color = "Payment submitted", 0xf1c40f
	case purchase.EventConfirmed:
		title, color = "Purchase confirmed!", 0x2ecc71
	case purchase.EventExpired:
		title, color = "Purchase expired", 0x95a5a6
	case purchase.EventCancelled:
		title, color = "Purchase cancelled", 0xe74c3c
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}

	name, err := describe(s)
	if err != nil {
		return nil, err
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Item", Value: name, Inline: true},
		{Name: "Total", Value: fmt.Sprintf("%s %s", s.Total, s.Currency), Inline: true},
		{Name: "Buyer", Value: s.Buyer.ToLowerStr()},
	}
	if len(s.TxHash) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Transaction", Value: string(s.TxHash)})
	}

	msg := &discordgo.MessageEmbed{
		Title:     title,
		Color:     color,
		Fields:    fields,
		Timestamp: e.At.UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: s.Id},
	}
	if len(d.assetUrl) > 0 {
		msg.URL = fmt.Sprintf(d.assetUrl, s.Nft.ChainId, s.Nft.ContractAddress, s.Nft.TokenId)
	}
	if len(s.Snapshot.Image) > 0 {
		msg.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: s.Snapshot.Image}
	}
	return msg, nil
}

// describe names an entity the way embeds show it
func describe(e domain.Entity) (string, error) {
	switch v := e.(type) {
	case *purchase.Session:
		return describe(*v)
	case purchase.Session:
		if len(v.Snapshot.Name) > 0 {
			return v.Snapshot.Name, nil
		}
		return fmt.Sprintf("%s #%s", v.Nft.ContractAddress, v.Nft.TokenId), nil
	case *nftitem.NftItem:
		return describe(*v)
	case nftitem.NftItem:
		if len(v.Name) > 0 {
			return v.Name, nil
		}
		return fmt.Sprintf("%s #%s", v.ContractAddress, v.TokenId), nil
	case *collection.Collection:
		return describe(*v)
	case collection.Collection:
		if len(v.CollectionName) > 0 {
			return v.CollectionName, nil
		}
		return v.Erc721Address.ToLowerStr(), nil
	}
	return "", xerrors.Errorf("%T: %w", e, domain.ErrUnknownEntity)
}
