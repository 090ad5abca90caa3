package discord

const (
	IntercomUsername  = "Intercom notifier"
	IntercomAvatarURL = "https://github.com/kory33/home-intercom-server-rs/raw/master/assets/240px-Speaker_Icon.jpg"
	IntercomTitle     = "The intercom just rang!"

	// MentionEveryone pings every member of the channel.
	MentionEveryone = "@everyone"
)

// IntercomRang is the fixed doorbell notification.
func IntercomRang() Message {
	return Message{
		Username:  IntercomUsername,
		AvatarURL: IntercomAvatarURL,
		Content:   MentionEveryone,
		Embeds:    []Embed{{Title: IntercomTitle}},
	}
}
