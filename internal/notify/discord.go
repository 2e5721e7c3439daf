package notify

import (
	"fmt"
	"log"

	"github.com/KirkDiggler/raidplan/internal/events"
	"github.com/bwmarrin/discordgo"
)

const (
	colorRejected = 0xE74C3C
	colorCascaded = 0xF1C40F
)

// DiscordSession is the part of *discordgo.Session the notifier needs
type DiscordSession interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifierConfig holds the notifier's dependencies
type DiscordNotifierConfig struct {
	Session   DiscordSession
	ChannelID string
}

// DiscordNotifier posts rejections and cascades to a channel so collaborators see them
type DiscordNotifier struct {
	session   DiscordSession
	channelID string
}

// NewDiscordNotifier creates a Discord notifier
func NewDiscordNotifier(cfg *DiscordNotifierConfig) *DiscordNotifier {
	if cfg.Session == nil {
		panic("discord session is required")
	}
	if cfg.ChannelID == "" {
		panic("discord channel id is required")
	}

	return &DiscordNotifier{
		session:   cfg.Session,
		channelID: cfg.ChannelID,
	}
}

func (n *DiscordNotifier) ID() string    { return "discord-notifier" }
func (n *DiscordNotifier) Priority() int { return events.PriorityNotify }

// Register subscribes the notifier to the events worth interrupting people for
func (n *DiscordNotifier) Register(bus *events.Bus) {
	bus.Subscribe(events.EventTypeAssignmentRejected, n)
	bus.Subscribe(events.EventTypeAssignmentsCascaded, n)
}

func (n *DiscordNotifier) HandleEvent(event events.Event) error {
	embed := n.embedFor(event)
	if embed == nil {
		return nil
	}

	_, err := n.session.ChannelMessageSendComplex(n.channelID, &discordgo.MessageSend{
		Embed: embed,
	})
	if err != nil {
		log.Printf("Failed to post %s for plan %s: %v", event.GetType(), event.GetPlanID(), err)
		return fmt.Errorf("posting %s notice: %w", event.GetType(), err)
	}
	return nil
}

func (n *DiscordNotifier) embedFor(event events.Event) *discordgo.MessageEmbed {
	switch e := event.(type) {
	case *events.AssignmentRejectedEvent:
		return &discordgo.MessageEmbed{
			Title:       "Assignment rejected",
			Description: RejectionText(e),
			Color:       colorRejected,
			Fields:      planFields(e, 0),
		}
	case *events.AssignmentsCascadedEvent:
		if len(e.Removed) == 0 {
			return nil
		}
		return &discordgo.MessageEmbed{
			Title:       "Later assignments removed",
			Description: CascadeText(e),
			Color:       colorCascaded,
			Fields:      planFields(e, e.Version),
		}
	default:
		return nil
	}
}

func planFields(event events.Event, version int64) []*discordgo.MessageEmbedField {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Plan", Value: event.GetPlanID(), Inline: true},
		{Name: "By", Value: authorOf(event), Inline: true},
	}
	if version > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Version", Value: fmt.Sprintf("%d", version), Inline: true})
	}
	return fields
}
