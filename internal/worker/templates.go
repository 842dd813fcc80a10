package worker

import "html/template"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<html>
<body>
  <p>Hello {{.Username}},</p>
  <p>Thank you for registering. Please confirm your email address by
  following the link below:</p>
  <p><a href="{{.BaseURL}}/api/auth/confirmed_email/{{.Token}}">Confirm email</a></p>
  <p>If you did not create an account, ignore this message.</p>
</body>
</html>
`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`<html>
<body>
  <p>Hello {{.Username}},</p>
  <p>Your password has been reset. Use this one-time password to sign in,
  then change it right away:</p>
  <p><b>{{.Password}}</b></p>
</body>
</html>
`))

var birthdayDigestTemplate = template.Must(template.New("birthday_digest").Parse(`<html>
<body>
  <p>Upcoming client birthdays:</p>
  <pre>{{.Body}}</pre>
</body>
</html>
`))
