package entities

import "time"

type Document struct {
	ID                  string     `db:"id"`
	ClientID            string     `db:"client_id"`
	Name                string     `db:"name"`
	FilePath            string     `db:"file_path"`
	FileSize            int64      `db:"file_size"`
	Mime                string     `db:"mime"`
	Status              string     `db:"status"`
	ShareToken          *string    `db:"share_token"`
	ShareTokenExpiresAt *time.Time `db:"share_token_expires_at"`
	SignedFilePath      *string    `db:"signed_file_path"`
	SignerName          *string    `db:"signer_name"`
	SignerEmail         *string    `db:"signer_email"`
	UploadedBy          string     `db:"uploaded_by"`
	CreatedAt           time.Time  `db:"created_at"`
	SharedAt            *time.Time `db:"shared_at"`
	ViewedAt            *time.Time `db:"viewed_at"`
	SignedAt            *time.Time `db:"signed_at"`
}
