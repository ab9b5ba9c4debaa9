package entity

// Payloads the fact extractor asks the model to return. All fields are
// optional on the wire; a prose or partial reply degrades to zero facts.

type DetailFact struct {
	DetailType  string `json:"detail_type"`
	DetailValue string `json:"detail_value"`
}

type RoomDetailFact struct {
	RoomName    string `json:"room_name"`
	DetailType  string `json:"detail_type"`
	DetailValue string `json:"detail_value"`
}

// HouseFacts is the setup-chat extraction payload: house-level details,
// newly mentioned rooms, and details already scoped to named rooms.
type HouseFacts struct {
	HouseDetails []DetailFact     `json:"house_details"`
	Rooms        []string         `json:"rooms"`
	RoomDetails  []RoomDetailFact `json:"room_details"`
}

// RoomListDelta is the room-confirmation extraction payload.
type RoomListDelta struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

// RoomFacts is the room-design extraction payload, scoped to one room.
type RoomFacts struct {
	Details []DetailFact `json:"details"`
}
