package club

type Type string

const (
	TypeRecording    Type = "recording"
	TypeProduction   Type = "production"
	TypeRental       Type = "rental"
	TypeCreative     Type = "creative"
	TypeManagement   Type = "management"
	TypeDistribution Type = "distribution"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeRecording, TypeProduction, TypeRental, TypeCreative, TypeManagement, TypeDistribution:
		return true
	default:
		return false
	}
}

type RoleType string

const (
	RoleArtist      RoleType = "artist"
	RoleProducer    RoleType = "producer"
	RoleStudioOwner RoleType = "studio_owner"
	RoleLyricist    RoleType = "lyricist"
	RoleOther       RoleType = "other"
)

// OwnerMemberRole is the label the club owner carries in the member list.
const OwnerMemberRole = "Owner"

var rolesByType = map[Type]RoleType{
	TypeRecording:    RoleArtist,
	TypeProduction:   RoleProducer,
	TypeRental:       RoleStudioOwner,
	TypeCreative:     RoleLyricist,
	TypeManagement:   RoleOther,
	TypeDistribution: RoleOther,
}

// RoleFor maps a club type to the role its owner is granted on creation.
func RoleFor(t Type) RoleType {
	if role, ok := rolesByType[t]; ok {
		return role
	}
	return RoleOther
}
