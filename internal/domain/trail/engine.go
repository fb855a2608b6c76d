package trail

// Well-known inventory item ids.
const (
	ItemFood     = "food"
	ItemBullets  = "bullets"
	ItemClothes  = "clothes"
	ItemMedicine = "medicine"
	ItemWheel    = "wheel"
	ItemAxle     = "axle"
	ItemTongue   = "tongue"
)

// Engine evaluates one session at a time against an immutable catalog
// bundle. It holds no session state of its own; everything mutable
// lives on the Session the caller passes in.
type Engine struct {
	catalogs Catalogs
}

func NewEngine(catalogs Catalogs) *Engine {
	catalogs.Validate()
	return &Engine{catalogs: catalogs}
}

func (e *Engine) Catalogs() Catalogs {
	return e.catalogs
}
