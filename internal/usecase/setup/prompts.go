package setup

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

// Generation settings per call type. Conversational turns are kept short;
// structured outputs get room to complete.
var (
	conversationConfig = entity.GenerationConfig{Temperature: 0.2, MaxOutputTokens: 100}
	summaryConfig      = entity.GenerationConfig{Temperature: 0.2, MaxOutputTokens: 1024}
)

const (
	outerAreaQuestion = "What outdoor features would you like, such as a garden, parking, or balconies?"

	setupFallback   = "Sorry, I'm having trouble. What's next for your house?"
	summaryFallback = "Sorry, I couldn't generate the summary. Let's proceed to room design."
	confirmFallback = "Sorry, I'm having trouble confirming rooms. What rooms do you want?"
)

func seedQuestion(roomName string) string {
	return fmt.Sprintf("What's the overall vibe you're going for in your %s?", roomName)
}

// joinDetails renders a detail map as "k: v, k: v" with stable key order.
func joinDetails(details map[string]string) string {
	if len(details) == 0 {
		return "None"
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+": "+details[k])
	}
	return strings.Join(pairs, ", ")
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}

func setupInstruction(projectName string, houseDetails map[string]string, roomNames []string) string {
	return fmt.Sprintf(`You're a house design assistant for project '%s'. Your goal is to set up the house by asking ONE question at a time about:
1. Number of floors
2. Architectural style
3. House type
4. Size
5. Plot size
6. Orientation
7. Rooms
8. Outdoor features (only for 'Outer Area')

Rules:
- Ask EXACTLY ONE question, unless 'Finalize' or 'Outer Area' is selected.
- Be conversational, like a designer ensuring the layout fits perfectly.
- If user provides a detail, acknowledge it and ask for another detail or confirm rooms if appropriate.
- If rooms are provided, ask to confirm them (e.g., 'Are you good with %s?').
- For 'Outer Area', ask about parking, garden, or balconies.
- Include only details explicitly provided by the user.
- Do not mention unspecified or missing details.

Current details: %s.
Rooms: %s.`,
		projectName,
		joinNames(roomNames),
		joinDetails(houseDetails),
		joinNames(roomNames),
	)
}

func houseFactsPrompt(userMessage string) string {
	return fmt.Sprintf(`Based on the user message: '%s', identify house details, rooms, or room-specific details.

Return JSON:
{
    "house_details": [
        {
            "detail_type": "plot_size",
            "detail_value": "1152 sq ft"
        }
    ],
    "rooms": ["Bedroom", "Kitchen"],
    "room_details": [
        {
            "room_name": "Bedroom",
            "detail_type": "furniture",
            "detail_value": "king-size bed"
        }
    ]
}

Only extract explicit details/rooms. Return empty arrays if none.`, userMessage)
}

func summaryPrompt(projectName string, houseDetails map[string]string, roomDetails map[string]map[string]string, outerAreas map[string]string) string {
	houseJSON, _ := json.MarshalIndent(houseDetails, "", "  ")
	roomsJSON, _ := json.MarshalIndent(roomDetails, "", "  ")
	areasJSON, _ := json.MarshalIndent(outerAreas, "", "  ")

	return fmt.Sprintf(`Generate a structured summary for project '%s' based on user-provided details only:

House Details:
%s

Rooms and Their Details:
%s

Outdoor Areas:
%s

Instructions:
- Structure the summary with numbered sections:
  - 1. General Information: House type, number of stories.
  - 2. Rooms & Spaces: Number of bedrooms, bathrooms, additional rooms.
  - 3. Room Specifications: Details per room as provided.
  - 4. Outdoor Areas: Features as provided.
  - Overall Summary: A concise, friendly recap.
- Include only details explicitly provided by the user.
- Do not mention unspecified, missing, or default details.
- Use bullet points for each section.

Return only the structured summary text.`,
		projectName, houseJSON, roomsJSON, areasJSON)
}

func roomListInstruction(projectName string, currentRooms []string) string {
	rooms := joinNames(currentRooms)
	return fmt.Sprintf(`You're a house design assistant for project '%s'. Current rooms: %s. Your goal is to confirm the room list or adjust based on user input, then finalize it. Ask ONE question or confirm rooms:

- If user confirms (e.g., 'Yes'), respond: 'Awesome, rooms confirmed: %s! Let's start designing them.'
- If user adjusts (e.g., 'Remove Study Room'), update the list and ask: 'Updated rooms: {new_rooms}. Is this final?'
- If no rooms or no input, ask: 'What rooms do you want, like Living Room, Kitchen, Bedroom?'
- After confirmation, set rooms as final.

Return only the response text.`, projectName, rooms, rooms)
}

func updatedRoomsInstruction(projectName string, currentRooms, newRooms []string) string {
	return fmt.Sprintf(`You're a house design assistant for project '%s'. Current rooms: %s. User modified the room list. Updated rooms: %s. Respond: 'Updated rooms: %s. Is this final?'`,
		projectName, joinNames(currentRooms), joinNames(newRooms), strings.Join(newRooms, ", "))
}

func roomDeltaPrompt(userMessage string) string {
	return fmt.Sprintf(`Based on user message: '%s', identify rooms to add/remove.

Return JSON:
{
    "add": ["Bathroom"],
    "remove": ["Study Room"]
}

Return empty arrays if none.`, userMessage)
}
