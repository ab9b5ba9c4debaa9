package report

import (
	"encoding/json"
	"fmt"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

var summaryConfig = entity.GenerationConfig{Temperature: 0.2, MaxOutputTokens: 1024}

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
- Structure the summary with sections like the reference report:
  - 1. General Information: House type, number of stories.
  - 2. Rooms & Spaces: Number of bedrooms, bathrooms, additional rooms (e.g., office, gym).
  - 3. Bedroom Specifications: Details for Master Bedroom, other bedrooms (e.g., closets, windows, bathrooms).
  - 4. Office Specifications: Size, features (e.g., desk space, lighting).
  - 5. Gym Specifications: Size, features (e.g., cardio equipment, ventilation).
  - 6. Living & Dining Area: Layout, special features.
  - 7. Kitchen Preferences: Layout, lighting, storage.
  - Overall Summary: A concise, friendly recap.
- Include only details explicitly provided by the user (e.g., if style is given, include it; if not, omit it).
- Do not mention unspecified, missing, or default details.
- Use bullet points for each section.

Return only the structured summary text.`,
		projectName, houseJSON, roomsJSON, areasJSON)
}
