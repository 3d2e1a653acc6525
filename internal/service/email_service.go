package service

import (
	"crypto/tls"
	"fmt"
	"microblog-backend/config"
	"microblog-backend/internal/common"
	"microblog-backend/internal/util"
	"time"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// EmailService 负责站内通知邮件。所有发送都是异步尽力而为，
// 失败只记日志，绝不影响触发它的请求
type EmailService struct {
	smtpHost string
	smtpPort int
	username string
	password string
}

func NewEmailService() *EmailService {
	return &EmailService{
		smtpHost: config.AppConfig.SMTPHost,
		smtpPort: config.AppConfig.SMTPPort,
		username: config.AppConfig.SMTPUsername,
		password: config.AppConfig.SMTPPassword,
	}
}

// SendWelcomeEmail 注册成功后发送欢迎邮件
func (s *EmailService) SendWelcomeEmail(email, username string) {
	subject := "欢迎加入 " + config.AppConfig.DomainName
	body := fmt.Sprintf("亲爱的 %s，\n\n欢迎来到我们的社区！现在就去发布你的第一篇帖子，或者关注感兴趣的作者吧。\n\n%s",
		username, config.AppConfig.FrontendURL)

	s.sendEmailAsync(email, subject, body)
}

// SendNewFollowerEmail 有新粉丝时通知作者
func (s *EmailService) SendNewFollowerEmail(email, authorName, followerName string) {
	subject := "你有了一位新的关注者"
	body := fmt.Sprintf("亲爱的 %s，\n\n用户 %s 刚刚关注了你，你的新帖子将出现在对方的订阅流里。\n\n%s",
		authorName, followerName, config.AppConfig.FrontendURL)

	s.sendEmailAsync(email, subject, body)
}

func (s *EmailService) sendEmailAsync(to, subject, body string) {
	go func() {
		// SMTP 偶发超时属于临时错误，重试几次再放弃
		err := common.WithRetry(func() error {
			return s.sendEmail(to, subject, body)
		}, 3)
		if err != nil {
			util.Logger.Error("异步发送邮件失败", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	util.Logger.Info("开始发送邮件",
		zap.String("to", to),
		zap.String("subject", subject))

	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = true
	d.TLSConfig = &tls.Config{ServerName: s.smtpHost}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	util.Logger.Info("邮件发送成功", zap.String("to", to))
	return nil
}
