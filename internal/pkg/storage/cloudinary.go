package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Client define o contrato do armazenamento de blobs (imagens de produtos e
// logos de lojas). A camada de serviço depende apenas desta interface.
type Client interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

// CloudinaryClient é a implementação concreta da interface Client.
type CloudinaryClient struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryClient cria o cliente a partir das credenciais de configuração.
func NewCloudinaryClient(cloudName, apiKey, apiSecret string) (Client, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("falha ao inicializar o cliente Cloudinary: %w", err)
	}
	return &CloudinaryClient{cld: cld}, nil
}

// Upload envia os bytes da imagem para a pasta indicada e retorna a URL pública.
// O public ID é um UUID gerado aqui; o Cloudinary anexa a pasta como prefixo.
func (c *CloudinaryClient) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("falha no upload para o Cloudinary: %w", err)
	}
	return res.SecureURL, nil
}

// Destroy remove um asset pelo public ID (incluindo o prefixo da pasta).
func (c *CloudinaryClient) Destroy(ctx context.Context, publicID string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("falha ao remover asset do Cloudinary: %w", err)
	}
	return nil
}
