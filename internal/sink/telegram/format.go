package telegram

import (
	"fmt"
	"time"

	"leadgate/internal/lead"
)

// Chat timestamps are minute precision; seconds are noise in a
// notification feed.
const timestampLayout = "02/01/2006, 15:04"

const messageTemplate = `🔥 *NEW LEAD* 🔥

👤 *Name:* %s
📧 *Email:* %s
📱 *Phone:* %s
❓ *Challenge:* %s
⏰ *Time preference:* %s

📅 *Received:* %s
🌐 *Source:* %s

#lead #landingpage`

// Message renders the notification for one lead in the bot's Markdown
// dialect.
func Message(rec lead.Record, loc *time.Location) string {
	return fmt.Sprintf(messageTemplate,
		rec.Name,
		rec.Email,
		rec.Phone,
		rec.Challenge,
		rec.TimePreference,
		rec.Timestamp.In(loc).Format(timestampLayout),
		lead.ChannelLabel,
	)
}
