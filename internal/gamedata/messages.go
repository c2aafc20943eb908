package gamedata

import "fmt"

// Messages holds the fixed in-game message strings.
type Messages struct {
	Welcome       string `json:"welcome"` // Format string taking the depth
	Victory       string `json:"victory"`
	Death         string `json:"death"`
	MonsterDeath  string `json:"monsterDeath"`
	PlayerHit     string `json:"playerHit"`
	Heal          string `json:"heal"`
	NothingHere   string `json:"nothingHere"`
	AmuletNearby  string `json:"amuletNearby"`
	AmuletPower   string `json:"amuletPower"`
	Gold          string `json:"gold"` // Format string taking the amount
	Blocked       string `json:"blocked"`
	NoStairs      string `json:"noStairs"`
	NeedAmulet    string `json:"needAmulet"`
	Confused      string `json:"confused"`
	ArmourRusts   string `json:"armourRusts"`
	Poisoned      string `json:"poisoned"`
	FireBreath    string `json:"fireBreath"`
	AlreadyOnTop  string `json:"alreadyOnTop"`
	AlreadyBottom string `json:"alreadyBottom"`
}

// WelcomeTo returns the arrival message for a depth.
func (m *Messages) WelcomeTo(depth int) string {
	return fmt.Sprintf(m.Welcome, depth)
}

// GoldFound returns the pickup message for an amount of gold.
func (m *Messages) GoldFound(amount int) string {
	return fmt.Sprintf(m.Gold, amount)
}

// LoadMessages loads message strings from the embedded messages.json file.
func LoadMessages() (*Messages, error) {
	file, err := Load[Messages]("messages.json")
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// MustLoadMessages loads message strings, panicking on error.
func MustLoadMessages() *Messages {
	messages := MustLoad[Messages]("messages.json")
	return &messages
}
