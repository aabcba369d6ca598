// internal/notifications/notifier.go
// The outbound notification surface for the match lifecycle. Every
// method is fire-and-forget: failures are logged and counted, never
// returned, so a provider outage cannot fail the triggering operation.

package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/profiles"
	"github.com/hellonanny/hellonanny-backend/internal/tokens"
)

// Notifier composes email and SMS delivery with link-token minting. It
// satisfies the notifier interfaces of the matching and interview
// services.
type Notifier struct {
	email       EmailProvider
	sms         SMSProvider
	tokenIssuer *tokens.Issuer
	baseURL     string

	emailEnabled bool
	smsEnabled   bool
}

func NewNotifier(email EmailProvider, sms SMSProvider, tokenIssuer *tokens.Issuer, baseURL string, emailEnabled, smsEnabled bool) *Notifier {
	return &Notifier{
		email:        email,
		sms:          sms,
		tokenIssuer:  tokenIssuer,
		baseURL:      baseURL,
		emailEnabled: emailEnabled,
		smsEnabled:   smsEnabled,
	}
}

// ShortlistReady tells a host their shortlist is ready for CV review.
func (n *Notifier) ShortlistReady(ctx context.Context, host *profiles.Host, reviewURL string) {
	subject := "Your nanny shortlist is ready"
	body := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>We have put together a shortlist of nannies matched to your requirements.</p>
<p><a href="%s">Review their CVs here</a>. The link stays valid for 7 days.</p>
<p>Warm regards,<br>The HelloNanny team</p>`,
		host.FamilyName, reviewURL)

	n.sendEmail(ctx, host.Email, subject, body, "shortlist_ready")
	n.sendSMS(ctx, host.Phone, "Your HelloNanny shortlist is ready. Check your email for the review link.", "shortlist_ready")
}

// DecisionRequested tells the party whose turn it is that the other
// side wants to proceed.
func (n *Notifier) DecisionRequested(ctx context.Context, host *profiles.Host, nanny *profiles.Nanny, awaitingRole, decideURL string) {
	if awaitingRole == tokens.RoleNanny {
		body := fmt.Sprintf(
			`<p>Hello %s,</p>
<p>The %s family would like to proceed with you.</p>
<p><a href="%s">Let them know your decision</a>.</p>`,
			nanny.FullName, host.FamilyName, decideURL)
		n.sendEmail(ctx, nanny.Email, "A family wants to proceed with you", body, "decision_requested")
		n.sendSMS(ctx, nanny.Phone, "A HelloNanny family wants to proceed with you. Check your email to respond.", "decision_requested")
		return
	}

	body := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>%s would like to proceed with your family.</p>
<p><a href="%s">Let them know your decision</a>.</p>`,
		host.FamilyName, nanny.FullName, decideURL)
	n.sendEmail(ctx, host.Email, "A nanny wants to proceed with you", body, "decision_requested")
}

// MatchProceeded tells both parties the match is mutual and hands each
// a tokenized chat link.
func (n *Notifier) MatchProceeded(ctx context.Context, host *profiles.Host, nanny *profiles.Nanny, conversationID string) {
	hostToken, err := n.tokenIssuer.GenerateChatToken(conversationID, tokens.RoleHost)
	if err != nil {
		log.Printf("Chat token for host failed: %v", err)
		return
	}
	nannyToken, err := n.tokenIssuer.GenerateChatToken(conversationID, tokens.RoleNanny)
	if err != nil {
		log.Printf("Chat token for nanny failed: %v", err)
		return
	}

	hostURL := n.chatURL(conversationID, hostToken)
	nannyURL := n.chatURL(conversationID, nannyToken)

	n.sendEmail(ctx, host.Email, "It's a match!",
		fmt.Sprintf(`<p>Hello %s,</p>
<p>Great news: %s would also like to proceed. You can now chat directly.</p>
<p><a href="%s">Open your conversation</a></p>`,
			host.FamilyName, nanny.FullName, hostURL),
		"match_proceeded")

	n.sendEmail(ctx, nanny.Email, "It's a match!",
		fmt.Sprintf(`<p>Hello %s,</p>
<p>Great news: the %s family would also like to proceed. You can now chat directly.</p>
<p><a href="%s">Open your conversation</a></p>`,
			nanny.FullName, host.FamilyName, nannyURL),
		"match_proceeded")

	n.sendSMS(ctx, nanny.Phone, "A family on HelloNanny wants to proceed with you. Check your email to start chatting.", "match_proceeded")
}

// InterviewSlotsProposed asks a nanny to pick an interview slot.
func (n *Notifier) InterviewSlotsProposed(ctx context.Context, nanny *profiles.Nanny, respondURL string) {
	body := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>A family would like to interview you and has proposed some times.</p>
<p><a href="%s">Choose a time that works for you</a>.</p>`,
		nanny.FullName, respondURL)

	n.sendEmail(ctx, nanny.Email, "Interview invitation", body, "interview_proposed")
	n.sendSMS(ctx, nanny.Phone, "You have a HelloNanny interview invitation. Check your email to pick a time.", "interview_proposed")
}

// InterviewConfirmed tells both parties the interview is booked.
func (n *Notifier) InterviewConfirmed(ctx context.Context, host *profiles.Host, nanny *profiles.Nanny, slot time.Time, joinURL string) {
	when := slot.Format("Monday, 2 January 2006 at 15:04 MST")

	link := ""
	if joinURL != "" {
		link = fmt.Sprintf(`<p><a href="%s">Join the video call</a></p>`, joinURL)
	}

	n.sendEmail(ctx, host.Email, "Interview confirmed",
		fmt.Sprintf(`<p>Hello %s,</p><p>%s has confirmed your interview for %s.</p>%s`,
			host.FamilyName, nanny.FullName, when, link),
		"interview_confirmed")

	n.sendEmail(ctx, nanny.Email, "Interview confirmed",
		fmt.Sprintf(`<p>Hello %s,</p><p>Your interview with the %s family is confirmed for %s.</p>%s`,
			nanny.FullName, host.FamilyName, when, link),
		"interview_confirmed")
}

// InterviewDeclined tells the host none of the proposed slots worked.
func (n *Notifier) InterviewDeclined(ctx context.Context, host *profiles.Host) {
	body := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>Unfortunately none of your proposed interview times worked for the nanny. Please log in to propose new times.</p>`,
		host.FamilyName)

	n.sendEmail(ctx, host.Email, "New interview times needed", body, "interview_declined")
}

func (n *Notifier) chatURL(conversationID, token string) string {
	return fmt.Sprintf("%s/chat/%s?token=%s", n.baseURL, conversationID, token)
}

func (n *Notifier) sendEmail(ctx context.Context, to, subject, body, kind string) {
	if !n.emailEnabled || to == "" {
		return
	}
	if err := n.email.SendEmail(ctx, to, subject, body); err != nil {
		log.Printf("Email notification %q failed: %v", kind, err)
		RecordNotificationFailure("email", kind)
		return
	}
	RecordNotificationSent("email", kind)
}

func (n *Notifier) sendSMS(ctx context.Context, to, body, kind string) {
	if !n.smsEnabled || to == "" {
		return
	}
	if err := n.sms.SendSMS(ctx, to, body); err != nil {
		log.Printf("SMS notification %q failed: %v", kind, err)
		RecordNotificationFailure("sms", kind)
		return
	}
	RecordNotificationSent("sms", kind)
}
