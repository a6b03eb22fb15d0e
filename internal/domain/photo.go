package domain

import "path"

const (
	UserPhotoPrefix   = "photos/users"
	ClientPhotoPrefix = "photos/clients"
)

type Photo struct {
	ID        int64   `db:"id"`
	ClientID  int64   `db:"client_id"`
	FileName  string  `db:"file_name"`
	Caption   *string `db:"caption"`
	CreatedAt int64   `db:"created_at"`
	UpdatedAt int64   `db:"updated_at"`
}

func (p Photo) Key() string {
	return ClientPhotoKey(p.FileName)
}

func ClientPhotoKey(fileName string) string {
	return path.Join(ClientPhotoPrefix, fileName)
}

func UserPhotoKey(fileName string) string {
	return path.Join(UserPhotoPrefix, fileName)
}
