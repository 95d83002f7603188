package component

// Kind names what a spawned entity is so frontends can draw it and the
// journal can describe it.
type Kind string

const (
	KindArrow       Kind = "arrow"
	KindBossBolt    Kind = "boss_bolt"
	KindFireRain    Kind = "fire_rain"
	KindFlamePillar Kind = "flame_pillar"
)

// Tag marks an entity as a projectile or an area effect.
type Tag struct {
	Kind   Kind
	Effect bool
}

var TagKind = Register[Tag]("tag")
