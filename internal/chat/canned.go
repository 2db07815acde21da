package chat

import "strings"

var cannedReplies = []struct {
	keywords []string
	reply    string
}{
	{
		[]string{"apply", "application", "how to apply"},
		"To apply: open a job, click Apply, and submit your work when accepted. You can track status in your Doer Dashboard.",
	},
	{
		[]string{"jobs", "browse", "find work"},
		"Browse jobs from the Jobs page. Use filters like department and status to narrow results.",
	},
	{
		[]string{"account", "login", "signup"},
		"Log in from the Login page. New users can Sign Up with role Doer or Poster and optional department.",
	},
	{
		[]string{"contact", "support", "help"},
		"For support, use this chat or email the site admin. Admins can manage users and jobs in the Admin Dashboard.",
	},
}

// DefaultReply answers anything the keyword table does not match.
const DefaultReply = "I'm here to help with browsing jobs, applying, and navigating dashboards. Ask me about applying, finding jobs, or managing your account."

// CannedReply picks a fixed answer by keyword from the last user message.
func CannedReply(messages []Message) string {
	var last string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			last = strings.ToLower(messages[i].Content)
			break
		}
	}

	for _, entry := range cannedReplies {
		for _, kw := range entry.keywords {
			if strings.Contains(last, kw) {
				return entry.reply
			}
		}
	}
	return DefaultReply
}
