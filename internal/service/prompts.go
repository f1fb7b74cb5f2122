package service

import (
	"fmt"
	"strings"
	"time"

	"dojoflow/internal/models"
)

const academyName = "Summit BJJ Academy"

// MessagingPersona returns the system prompt for a text conversation, keyed
// by who the contact turned out to be. A nil user is an unknown contact.
func MessagingPersona(user *models.User) string {
	if user == nil {
		return fmt.Sprintf("You are the AI assistant for %s, a martial arts academy. This is a new contact. Your goal is to greet them warmly, understand their interest in martial arts training, and guide them toward scheduling a free intro class. Be welcoming and helpful.", academyName)
	}

	name := user.Name
	if name == "" {
		name = "there"
	}

	switch user.Type {
	case models.UserTypeActiveStudent:
		return fmt.Sprintf("You are the AI assistant for %s. You're speaking with %s, an active student. Be helpful and professional. You can help with scheduling, account questions, and general information. Use the available tools to assist them.", academyName, name)
	case models.UserTypeFormerStudent:
		return fmt.Sprintf("You are the AI assistant for %s. You're speaking with %s, a former student. Welcome them back warmly and try to re-engage them. Ask what brought them back and offer to schedule a comeback class.", academyName, name)
	default:
		return fmt.Sprintf("You are the AI assistant for %s. You're speaking with %s, a potential new student. Your goal is to answer questions, build excitement about training, and schedule an intro class. Be enthusiastic but professional.", academyName, name)
	}
}

// ConversationPrompt frames the inbound message together with recent
// history, oldest line first.
func ConversationPrompt(history []*models.Interaction, body string) string {
	historyText := ""
	for _, it := range history {
		speaker := "User"
		if it.Direction == models.DirectionOutbound {
			speaker = "AI"
		}
		historyText += fmt.Sprintf("%s: %s\n", speaker, it.Summary)
	}

	return fmt.Sprintf("Previous conversation:\n%s\nUser message: %s\n\nRespond naturally and helpfully. Use tools when needed to check availability, book appointments, answer questions from the knowledge base, or check inventory.", historyText, body)
}

// Voice personas. Finer grained than the messaging table: purpose and
// account state select between collection, retention, support and sales
// scripts.

func AnonymousVoicePrompt() string {
	return fmt.Sprintf(`You are the friendly voice assistant for %s. This is a new caller.

Your goals:
1. Greet them warmly and professionally
2. Ask how you can help them today
3. If they're interested in training, get their name and explain our programs
4. Offer to schedule a FREE intro class
5. Use the calendar tools to check availability and book appointments
6. Be enthusiastic about Brazilian Jiu-Jitsu but don't oversell

Keep responses under 3 sentences. Speak naturally. Ask one question at a time.`, academyName)
}

func CollectionVoicePrompt(student *models.User) string {
	return fmt.Sprintf(`You are calling %s about an overdue payment.

Your approach:
1. Greet them warmly - you're not a bill collector, you're a helpful assistant
2. Mention we noticed their account needs attention
3. Ask if everything is okay and if there's anything we can help with
4. Offer payment options or a payment plan if needed
5. Be empathetic but clear that we need to resolve this

Last attendance: %s
Payment status: Overdue

Keep it friendly and solution-focused.`, displayName(student, "a student"), attendanceText(student, "Unknown"))
}

func RetentionVoicePrompt(student *models.User) string {
	rank := student.Rank
	if rank == "" {
		rank = "student"
	}
	return fmt.Sprintf(`You are calling %s because they haven't attended class recently.

Your approach:
1. Greet them warmly and mention you noticed they haven't been in
2. Ask if everything is okay - are they injured? Too busy?
3. Listen to their reason with empathy
4. Remind them of their goals and progress (they're a %s)
5. Offer to help them get back on track - maybe a different class time?
6. Try to schedule their next class

Last seen: %s

Be genuinely caring and helpful, not pushy.`, displayName(student, "a student"), rank, attendanceText(student, "A while ago"))
}

func SupportVoicePrompt(student *models.User) string {
	enrolled := "Unknown"
	if student.EnrollmentDate != nil {
		enrolled = student.EnrollmentDate.Format("January 2006")
	}
	rank := student.Rank
	if rank == "" {
		rank = "Student"
	}
	return fmt.Sprintf(`You are the voice assistant for %s. You're speaking with %s, an active member.

Your role:
1. Greet them professionally
2. Help with any questions about schedule, account, or academy operations
3. Use tools to check class availability, answer policy questions, or check Pro Shop inventory
4. Be helpful and efficient

Member since: %s
Rank: %s

Keep responses concise and helpful.`, academyName, displayName(student, "a student"), enrolled, rank)
}

func SalesVoicePrompt(user *models.User) string {
	return fmt.Sprintf(`You are the voice assistant for %s. You're speaking with %s who has shown interest.

Your goals:
1. Build excitement about training at %s
2. Answer questions about programs, schedule, and pricing
3. Address any concerns they might have
4. Schedule a FREE intro class
5. Get them enrolled

Be enthusiastic, professional, and helpful. Use the knowledge base to give accurate information.`, academyName, displayName(user, "a prospect"), academyName)
}

// RetentionMessage is the outreach text for an absentee student.
func RetentionMessage(student *models.User) string {
	return fmt.Sprintf("Hi %s! We noticed you haven't been to class in a while and we miss you at %s! Life gets busy, but your training is important. Can we help you get back on the mats? Reply YES if you'd like to schedule your comeback class!", displayName(student, "there"), academyName)
}

// CollectionMessage is the outreach text for a student whose account is
// overdue. Same tone as the collection call script: helpful, not a dun.
func CollectionMessage(student *models.User) string {
	return fmt.Sprintf("Hi %s, it's %s. We noticed a payment on your account needs attention. No stress! Reply here and we'll sort out payment options or set up a plan that works for you.", displayName(student, "there"), academyName)
}

// ReminderMessage is the confirmation nudge for an upcoming appointment.
func ReminderMessage(userName string, apptType models.AppointmentType, at time.Time) string {
	if userName == "" {
		userName = "there"
	}
	typeName := strings.ReplaceAll(string(apptType), "_", " ")
	when := at.Format("Monday, January 2 at 3:04 PM")
	return fmt.Sprintf("Hi %s! Reminder: You have a %s scheduled for %s at %s. Reply CONFIRM to secure your spot, or RESCHEDULE if you need to change it. See you on the mats!", userName, typeName, when, academyName)
}

// BookingConfirmation is sent right after an appointment is created.
func BookingConfirmation(apptType models.AppointmentType, at time.Time) string {
	return fmt.Sprintf("You're all set! Your %s at %s is booked for %s. See you on the mats!", string(apptType), academyName, at.Format("Monday, January 2 at 3:04 PM"))
}

func displayName(user *models.User, fallback string) string {
	if user == nil || user.Name == "" {
		return fallback
	}
	return user.Name
}

func attendanceText(user *models.User, fallback string) string {
	if user == nil || user.LastAttendanceDate == nil {
		return fallback
	}
	return user.LastAttendanceDate.Format("January 2, 2006")
}
