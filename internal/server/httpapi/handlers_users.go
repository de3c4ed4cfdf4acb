package httpapi

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/server/avatars"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

const avatarField = "profilePicture"

func (s *Server) parseCredentials(c *fiber.Ctx) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, badRequest("Cannot parse JSON", err)
	}
	if err := s.validate.Struct(&req); err != nil {
		return nil, badRequest("Invalid input", err)
	}
	return &req, nil
}

func (s *Server) register(c *fiber.Ctx) error {
	req, err := s.parseCredentials(c)
	if err != nil {
		return err
	}

	user, err := s.users.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	s.logger.Info(c.UserContext(), "Registered", "user_id", user.ID)
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

func (s *Server) login(c *fiber.Ctx) error {
	req, err := s.parseCredentials(c)
	if err != nil {
		return err
	}

	res, err := s.users.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(loginResponse{AccessToken: res.AccessToken, User: toUserResponse(res.User)})
}

func (s *Server) profilePicture(c *fiber.Ctx) error {
	avatar, err := s.users.GetAvatar(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, avatar.MimeType)
	return c.Send(avatar.Data)
}

func (s *Server) getProfile(c *fiber.Ctx) error {
	user, err := s.users.GetProfile(c.UserContext(), identity(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(toUserResponse(user))
}

// updateProfile accepts multipart (displayName + optional profilePicture
// file), urlencoded or JSON bodies. Absent parts leave the profile as is.
func (s *Server) updateProfile(c *fiber.Ctx) error {
	var form profileForm
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&form); err != nil {
			return badRequest("Cannot parse body", err)
		}
	}

	var displayName *string
	if form.DisplayName != "" {
		displayName = &form.DisplayName
	}

	avatar, err := s.readAvatar(c)
	if err != nil {
		return err
	}

	user, err := s.users.UpdateProfile(c.UserContext(), identity(c).UserID, displayName, avatar)
	if err != nil {
		return err
	}
	return c.JSON(toUserResponse(user))
}

// readAvatar returns the uploaded picture, or nil when the request has none.
func (s *Server) readAvatar(c *fiber.Ctx) (*models.Avatar, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, badRequest("Cannot parse multipart form", err)
	}
	files := form.File[avatarField]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	if fh.Size > s.avatarMaxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", common.ErrInvalidInput, s.avatarMaxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.avatarMaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	return avatars.Normalize(data, fh.Header.Get(fiber.HeaderContentType), s.avatarMaxBytes)
}
