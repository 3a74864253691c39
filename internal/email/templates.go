package email

import "fmt"

func passwordResetText(url string) string {
	return fmt.Sprintf(`Password recovery - Taskerra

We received a request to reset the password for your account.

Open the link below to choose a new password. The link is valid for 24
hours and can be used only once:

%s

If you did not request this, you can safely ignore this email; your
password will not change.
`, url)
}

func passwordResetHTML(url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Password recovery - Taskerra</title>
</head>
<body style="font-family: 'Inter', -apple-system, 'Segoe UI', Roboto, sans-serif; background-color: #f8f9fa; color: #1a1a1a; margin: 0; padding: 24px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
    <div style="background: linear-gradient(135deg, #1a1a1a 0%%, #2d2d2d 100%%); padding: 40px 30px; text-align: center;">
      <div style="font-size: 28px; font-weight: 700; color: #ffffff;">Taskerra</div>
      <div style="color: #a0a0a0; font-size: 14px;">Organize everything</div>
    </div>
    <div style="padding: 40px 30px;">
      <h1 style="font-size: 24px; font-weight: 600; text-align: center; margin-bottom: 16px;">Reset your password</h1>
      <p style="font-size: 16px; color: #4a4a4a; text-align: center; margin-bottom: 32px;">
        We received a request to reset the password for your account.
        Click the button below to choose a new one. The link is valid for
        24 hours and can be used only once.
      </p>
      <div style="text-align: center; margin-bottom: 32px;">
        <a href="%s" style="display: inline-block; background: linear-gradient(135deg, #1a1a1a 0%%, #2d2d2d 100%%); color: #ffffff; text-decoration: none; padding: 14px 32px; border-radius: 8px; font-weight: 600;">Reset password</a>
      </div>
      <p style="font-size: 14px; color: #8a8a8a; text-align: center;">
        If you did not request this, you can safely ignore this email;
        your password will not change.
      </p>
    </div>
  </div>
</body>
</html>`, url)
}
