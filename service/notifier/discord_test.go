package notifier

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/collection"
	"github.com/x-xyz/checkout/domain/nftitem"
	"github.com/x-xyz/checkout/domain/purchase"
)

type fakeSender struct {
	sent chan *discordgo.MessageEmbed
	err  error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	f.sent <- embed
	return &discordgo.Message{ChannelID: channelID}, f.err
}

type discordSuite struct {
	suite.Suite

	sender *fakeSender
	d      *Discord
}

func TestDiscordSuite(t *testing.T) {
	suite.Run(t, new(discordSuite))
}

func (s *discordSuite) SetupTest() {
	s.sender = &fakeSender{sent: make(chan *discordgo.MessageEmbed, 8)}
	s.d = NewDiscordWithSender(s.sender, DiscordCfg{ChannelId: "chan", AssetUrl: "https://x.xyz/asset/%d/%s/%s"})
}

func (s *discordSuite) TearDownTest() {
	s.d.Close()
}

func (s *discordSuite) event(t purchase.EventType) purchase.Event {
	return purchase.Event{
		Type: t,
		Session: purchase.Session{
			Id:       "sid",
			Buyer:    "0xABC",
			Nft:      nftitem.Id{ChainId: 1, ContractAddress: "0xdef", TokenId: "7"},
			Total:    "1.0250",
			Currency: "ETH",
			TxHash:   "0x01",
			Snapshot: purchase.Snapshot{Name: "Ape #7", Image: "https://img/7.png"},
		},
		At: time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *discordSuite) receive() *discordgo.MessageEmbed {
	select {
	case msg := <-s.sender.sent:
		return msg
	case <-time.After(time.Second):
		s.FailNow("no message sent")
		return nil
	}
}

func (s *discordSuite) TestPublishConfirmed() {
	s.NoError(s.d.Publish(ctx.Background(), s.event(purchase.EventConfirmed)))

	msg := s.receive()
	s.Equal("Purchase confirmed!", msg.Title)
	s.Equal("https://x.xyz/asset/1/0xdef/7", msg.URL)
	s.Equal("https://img/7.png", msg.Thumbnail.URL)
	s.Equal("2022-06-01T00:00:00Z", msg.Timestamp)
	s.Equal("sid", msg.Footer.Text)
	s.Len(msg.Fields, 4)
	s.Equal("1.0250 ETH", msg.Fields[1].Value)
	s.Equal("0xabc", msg.Fields[2].Value)
}

func (s *discordSuite) TestEveryEventHasAMessage() {
	for _, t := range []purchase.EventType{
		purchase.EventCreated,
		purchase.EventAttestationSubmitted,
		purchase.EventConfirmed,
		purchase.EventExpired,
		purchase.EventCancelled,
	} {
		msg, err := s.d.embedOf(s.event(t))
		s.Require().NoError(err, t)
		s.NotEmpty(msg.Title)
	}

	_, err := s.d.embedOf(s.event("unknown"))
	s.Error(err)
	s.NoError(s.d.Publish(ctx.Background(), s.event("unknown")))
}

func (s *discordSuite) TestSendFailureIsNotReturned() {
	s.sender.err = errors.New("discord down")
	s.NoError(s.d.Publish(ctx.Background(), s.event(purchase.EventExpired)))
	s.Equal("Purchase expired", s.receive().Title)
}

type offer struct{}

func (offer) EntityKind() domain.EntityKind {
	return "offer"
}

func (s *discordSuite) TestDescribe() {
	session := s.event(purchase.EventCreated).Session
	cases := []struct {
		entity domain.Entity
		name   string
	}{
		{session, "Ape #7"},
		{&session, "Ape #7"},
		{purchase.Session{Nft: nftitem.Id{ContractAddress: "0xdef", TokenId: "7"}}, "0xdef #7"},
		{&nftitem.NftItem{Name: "Ape #8"}, "Ape #8"},
		{nftitem.NftItem{ContractAddress: "0xdef", TokenId: "8"}, "0xdef #8"},
		{&collection.Collection{CollectionName: "Apes"}, "Apes"},
		{collection.Collection{Erc721Address: "0xDEF"}, "0xdef"},
	}
	for _, c := range cases {
		name, err := describe(c.entity)
		s.NoError(err)
		s.Equal(c.name, name)
	}

	_, err := describe(offer{})
	s.ErrorIs(err, domain.ErrUnknownEntity)
}
