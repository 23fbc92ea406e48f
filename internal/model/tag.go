package model

// ContextTag describes the sender's relationship to the recipient.
type ContextTag string

// The fixed set of relationship tags accepted on a send request.
const (
	TagFormerStudent   ContextTag = "former-student"
	TagFormerTeacher   ContextTag = "former-teacher"
	TagOldFriend       ContextTag = "old-friend"
	TagFormerColleague ContextTag = "former-colleague"
	TagFormerTeammate  ContextTag = "former-teammate"
	TagFamilyMember    ContextTag = "family-member"
	TagMentor          ContextTag = "mentor"
	TagOther           ContextTag = "other"
)

// displayPhrases maps each tag to the phrase shown in the outbound email.
var displayPhrases = map[ContextTag]string{
	TagFormerStudent:   "a former student of yours",
	TagFormerTeacher:   "someone you once taught alongside",
	TagOldFriend:       "an old friend",
	TagFormerColleague: "a former colleague",
	TagFormerTeammate:  "a former teammate",
	TagFamilyMember:    "a family member",
	TagMentor:          "someone you mentored",
	TagOther:           "someone from your past",
}

// Valid reports whether the tag is a member of the fixed set.
func (t ContextTag) Valid() bool {
	_, ok := displayPhrases[t]
	return ok
}

// DisplayPhrase returns the human-readable phrase for the tag.
// Unknown tags fall back to the "other" phrase.
func (t ContextTag) DisplayPhrase() string {
	if phrase, ok := displayPhrases[t]; ok {
		return phrase
	}
	return displayPhrases[TagOther]
}

// ContextTags returns all valid tags in declaration order.
func ContextTags() []ContextTag {
	return []ContextTag{
		TagFormerStudent,
		TagFormerTeacher,
		TagOldFriend,
		TagFormerColleague,
		TagFormerTeammate,
		TagFamilyMember,
		TagMentor,
		TagOther,
	}
}
