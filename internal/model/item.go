package model

// Item is a row of the `items` table.
//
// Fields:
//  ID          – primary key assigned by the store.  Nil when the store
//                could not report it back on create (see ItemRepo.Create).
//  Item        – short required text, at most 255 characters.
//  Descripcion – optional long text.  Nil means NULL, which is not the
//                same as an empty string.
//
// JSON tags carry no omitempty so that null values are rendered.
type Item struct {
	ID          *int64  `json:"id"`          // items.id
	Item        string  `json:"item"`        // items.item
	Descripcion *string `json:"descripcion"` // items.descripcion
}
