package handlers

import (
	"net/http"
	"os"

	"launchcontrol/pkg/keys"

	"github.com/gin-gonic/gin"
)

func platformKeystore() *keys.Keystore {
	return keys.NewKeystore(os.Getenv("KEYSTORE_DIR"))
}

// GenerateSignerRequest represents the request body for creating a signer
type GenerateSignerRequest struct {
	Password *string `json:"password"`
}

// GenerateSigner creates a platform signer key pair and stores it encrypted
func GenerateSigner(c *gin.Context) {
	var request GenerateSignerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Password == nil || *request.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	ks := platformKeystore()
	account, err := ks.Generate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := ks.Save(account, *request.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address": account.PublicKey.ToBase58()})
}

// UnlockSignerRequest represents the request body for verifying a signer
type UnlockSignerRequest struct {
	Password *string `json:"password"`
}

// UnlockSigner decrypts a stored signer to prove the password is correct.
// The private key never leaves the server.
func UnlockSigner(c *gin.Context) {
	var request UnlockSignerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Password == nil || *request.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	address := c.Param("address")
	account, err := platformKeystore().Load(address, *request.Password)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "could not unlock signer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": account.PublicKey.ToBase58(), "unlocked": true})
}
