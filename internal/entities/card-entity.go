package entities

// Card — цифровой профиль, который открывается при прикладывании NFC-карты.
// Хранится JSON-файлом, слаг служит и именем файла, и публичным адресом.
type Card struct {
	ParticipantCode string `json:"participantCode"`
	Name            string `json:"name"`
	Title           string `json:"title"`
	Company         string `json:"company"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Telegram        string `json:"telegram"`
	VK              string `json:"vk"`
	Instagram       string `json:"instagram"`
	Website         string `json:"website"`

	Design          string `json:"design"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	TextColor       string `json:"textColor"`
	BackgroundStyle string `json:"backgroundStyle"`
	BackgroundImage string `json:"backgroundImage"`

	Slug      string `json:"slug"`
	CreatedAt string `json:"createdAt"`
}
