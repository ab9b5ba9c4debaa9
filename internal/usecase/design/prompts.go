package design

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

// Design questions are the creative calls; they run warmer than extraction
// and conversation.
var questionConfig = entity.GenerationConfig{Temperature: 0.7, MaxOutputTokens: 150}

// requiredDetails is the ordered checklist a room design works through.
// Order is the asking order; completion is tracked per attribute.
var requiredDetails = []string{
	"atmosphere", "color_scheme", "style", "budget", "activities", "furniture",
	"lighting", "textures", "dimensions", "storage", "flooring", "wall_treatments",
	"windows", "decor", "technology", "accessibility", "sustainability",
}

func roomFactsPrompt(roomName, userMessage string) string {
	return fmt.Sprintf(`Based on user message: '%s', identify design details for the %s. Handle structured input like 'Kitchen: ample shelves, marble sink, ...' by parsing all listed items.

Return JSON:
{
    "details": [
        {
            "detail_type": "furniture",
            "detail_value": "king-size bed"
        },
        {
            "detail_type": "dimensions",
            "detail_value": "12x12.5ft"
        }
    ]
}

Extract ALL explicit details, including from structured formats (e.g., 'Room: detail1, detail2'). Return empty array if none.`, userMessage, roomName)
}

func nextDetailInstruction(room *entity.RoomContext, nextDetail string, answers map[string]string) string {
	return fmt.Sprintf(`You're an expert interior designer for the %s on floor %d of project '%s'. Craft a detailed, inspiring question to gather the next design detail for this room. The next detail to ask about is '%s'. Use the user's prior answers to tailor your suggestion:

- Be conversational and enthusiastic, e.g., 'Love the vibe so far!'.
- Provide creative, style-specific ideas based on prior answers (e.g., if 'modern' style, suggest sleek furniture or minimalist decor).
- Ask ONE question clearly focused on '%s'.

Prior answers: %s.`,
		room.Name, room.FloorNumber, room.ProjectName, nextDetail, nextDetail, joinAnswers(answers))
}

func confirmInstruction(room *entity.RoomContext, answers map[string]string) string {
	return fmt.Sprintf(`You're an expert interior designer for the %s on floor %d of project '%s'. All required details have been provided. Craft a warm, encouraging message to confirm the design:

- Acknowledge the completed design with enthusiasm, e.g., 'Your %s is shaping up beautifully!'.
- List the confirmed details briefly (e.g., 'with a king-size bed and cozy lighting').
- Ask for confirmation with: 'Can we confirm and move to the next room? Say "yes" or "confirmed"!'.

Confirmed details: %s.`,
		room.Name, room.FloorNumber, room.ProjectName, room.Name, joinAnswers(answers))
}

func completedInstruction(room *entity.RoomContext, nextRooms []*entity.Room) string {
	names := make([]string, 0, len(nextRooms))
	for _, r := range nextRooms {
		names = append(names, r.Name)
	}
	next := "None"
	if len(names) > 0 {
		next = strings.Join(names, ", ")
	}

	return fmt.Sprintf(`You're an expert interior designer for the %s on floor %d of project '%s'. The %s design is complete and confirmed. Craft an enthusiastic message to suggest the next step:

- Celebrate the completion, e.g., 'Awesome, %s is fully designed!'.
- List available next rooms or offer to finalize if no rooms remain.
- Ask: 'Want to move to another room or finalize the project?'

Next rooms: %s.`,
		room.Name, room.FloorNumber, room.ProjectName, room.Name, room.Name, next)
}

func questionFallback(roomName, nextDetail string) string {
	return fmt.Sprintf("Sorry, I'm having trouble. What about %s for your %s?", nextDetail, roomName)
}

func confirmFallback(roomName string) string {
	return fmt.Sprintf("Your %s design looks great! Can we confirm and move to the next room? Say 'yes'.", roomName)
}

func completedFallback(roomName string) string {
	return fmt.Sprintf("Awesome, %s is done! Want to move to another room or finalize?", roomName)
}

func joinAnswers(answers map[string]string) string {
	if len(answers) == 0 {
		return "None"
	}

	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+": "+answers[k])
	}
	return strings.Join(pairs, ", ")
}
