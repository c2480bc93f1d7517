package handlers

import (
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
)

// WhitelistRequest carries the owner signature and the affected users
type WhitelistRequest struct {
	Signer *string  `json:"signer"`
	Users  []string `json:"users"`
}

func bindWhitelist(c *gin.Context) (solana.PublicKey, []solana.PublicKey, bool) {
	var request WhitelistRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return solana.PublicKey{}, nil, false
	}
	if request.Signer == nil || len(request.Users) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "signer and users are required"})
		return solana.PublicKey{}, nil, false
	}
	signer, ok := parseAddress(c, *request.Signer, "signer")
	if !ok {
		return solana.PublicKey{}, nil, false
	}
	users := make([]solana.PublicKey, 0, len(request.Users))
	for _, raw := range request.Users {
		user, ok := parseAddress(c, raw, "user")
		if !ok {
			return solana.PublicKey{}, nil, false
		}
		users = append(users, user)
	}
	return signer, users, true
}

// AddToWhitelist creates whitelist entries for the given users
func AddToWhitelist(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, users, ok := bindWhitelist(c)
	if !ok {
		return
	}
	if err := eng.AddToWhitelist(presale, signer, users); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": len(users)})
}

// RemoveFromWhitelist revokes whitelist entries for the given users
func RemoveFromWhitelist(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, users, ok := bindWhitelist(c)
	if !ok {
		return
	}
	if err := eng.RemoveFromWhitelist(presale, signer, users); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": len(users)})
}

// CheckWhitelist reports whether a user holds a live whitelist entry
func CheckWhitelist(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	user, ok := parseAddress(c, c.Param("user"), "user")
	if !ok {
		return
	}
	whitelisted, err := eng.IsWhitelisted(presale, user)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"whitelisted": whitelisted})
}
