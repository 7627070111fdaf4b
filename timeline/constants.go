package timeline

import "github.com/msaldanha/nulldev/err"

const (
	ErrInvalidRule = err.Error("invalid normalizer rule")
)

// Upstream timeline codes with a dedicated rule.
const (
	CodeAdventureNameChanged = "101"
	CodeGuildNameChanged     = "102"
	CodeJobChanged           = "103"
	CodeLevelUp              = "104"
	CodeRaidCleared          = "201"
	CodeDungeonCleared       = "202"
	CodeItemAcquired         = "203"
	CodeChannelNote          = "301"
	CodeGuildJoined          = "401"
	CodeGuildLeft            = "402"
)

// Payload fields the normalizer knows about.
const (
	FieldAdventureName = "adventureName"
	FieldGuildName     = "guildName"
	FieldJobGrowName   = "jobGrowName"
	FieldLevel         = "level"
	FieldRaidName      = "raidName"
	FieldDungeonName   = "dungeonName"
	FieldItemName      = "itemName"
	FieldItemID        = "itemId"
	FieldItemRarity    = "itemRarity"
	FieldItemGrade     = "itemGrade"
	FieldChannelName   = "channelName"
	FieldChannelNo     = "channelNo"
)

type Category string

type CategoriesEnum struct {
	Raid    Category
	Region  Category
	Level   Category
	JobGrow Category
	Default Category
}

var Categories = CategoriesEnum{
	Raid:    "raid",
	Region:  "region",
	Level:   "level",
	JobGrow: "jobGrow",
	Default: "default",
}
